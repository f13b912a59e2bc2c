package main

import (
	"os"
	_ "time/tzdata"

	"github.com/penwyp/psvr-exporter/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

package router

import (
	"bufio"
	"fmt"
	"os"

	"github.com/penwyp/psvr-exporter/internal/data/assembler"
	"github.com/penwyp/psvr-exporter/internal/core/model"
)

// CountHands counts hand headers in an export file.
func CountHands(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %v", model.ErrIO, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		if assembler.IsStart(scanner.Text()) {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("%w: scan %s: %v", model.ErrIO, path, err)
	}
	return count, nil
}

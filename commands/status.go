package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/penwyp/psvr-exporter/internal/core/constants"
	"github.com/penwyp/psvr-exporter/internal/data/ledger"
	"github.com/penwyp/psvr-exporter/internal/data/router"
	"github.com/penwyp/psvr-exporter/internal/util"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the resume point and the exported table files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.status(cmd.OutOrStdout(), pick(exportDir, a.cfg.ExportDir), time.Now())
		},
	}
	cmd.Flags().StringVar(&exportDir, "export", "",
		"Export directory to list (overrides config export_dir)")
	return cmd
}

func (a *app) status(out io.Writer, exportDir string, now time.Time) error {
	p := util.NewPainter(out)

	l, err := a.openLedger()
	if err != nil {
		return err
	}
	snap := l.Snapshot()
	l.Close()

	location := ledger.StorePath(a.cfg.Ledger, a.cfg.StateDir)
	if location == "" {
		location = "(not persisted)"
	}

	lastHand := p.Warn("none")
	if !snap.Cursor.IsZero() {
		lastHand = fmt.Sprintf("%s (%s)", snap.Cursor.Format(constants.HandTimeLayout), util.FormatAge(snap.Cursor, now))
	}

	fmt.Fprintln(out, p.Title("Ledger"))
	fmt.Fprintf(out, "  %s %s %s\n", util.PadRight("Store", 14), a.cfg.Ledger, location)
	fmt.Fprintf(out, "  %s %s\n", util.PadRight("Last hand", 14), lastHand)
	fmt.Fprintf(out, "  %s %d\n", util.PadRight("Last hand id", 14), snap.LastID)

	if exportDir == "" {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, p.Title("Exports ")+exportDir)

	files, err := router.New(exportDir, a.cfg.Terminator()).Files()
	if err != nil {
		if _, statErr := os.Stat(exportDir); errors.Is(statErr, os.ErrNotExist) {
			fmt.Fprintln(out, "  "+p.Bad("directory does not exist"))
			return nil
		}
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "  no table files yet")
		return nil
	}

	table := &util.Table{
		Headers:    []string{"Table", "Hands", "Size"},
		RightAlign: map[int]bool{1: true, 2: true},
	}
	total := 0
	for _, f := range files {
		total += f.Hands
		table.Rows = append(table.Rows, []string{f.Name, util.FormatNumber(f.Hands), util.FormatBytes(f.Size)})
	}
	table.Rows = append(table.Rows, []string{"Total", util.FormatNumber(total), ""})

	return table.Render(out, p)
}

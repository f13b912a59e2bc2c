package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/psvr-exporter/internal/application/exporter"
	"github.com/penwyp/psvr-exporter/internal/core/constants"
	"github.com/penwyp/psvr-exporter/internal/core/model"
	"github.com/penwyp/psvr-exporter/internal/data/ledger"
	"github.com/penwyp/psvr-exporter/internal/util"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	logPath   string
	exportDir string
	follow    bool
	dryRun    bool
}

func newRunCmd(a *app) *cobra.Command {
	opts := exportOptions{follow: true}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Follow the hand log and export hands as they finish",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.export(ctx, cmd.OutOrStdout(), opts)
		},
	}
	addPathFlags(cmd, &opts)
	return cmd
}

func addPathFlags(cmd *cobra.Command, opts *exportOptions) {
	cmd.Flags().StringVar(&opts.logPath, "log", "",
		"PSVR hand log file (overrides config log_path)")
	cmd.Flags().StringVar(&opts.exportDir, "export", "",
		"Directory receiving one hand history file per table (overrides config export_dir)")
}

// export runs one exporter until ctx ends or, without follow, the log is
// exhausted. Events are printed as they arrive.
func (a *app) export(ctx context.Context, out io.Writer, opts exportOptions) error {
	logPath := pick(opts.logPath, a.cfg.LogPath)
	exportDir := pick(opts.exportDir, a.cfg.ExportDir)
	if logPath == "" {
		return errors.New("no hand log given: use --log or set log_path in the config")
	}
	if exportDir == "" {
		return errors.New("no export directory given: use --export or set export_dir in the config")
	}

	if !opts.dryRun {
		lock, err := ledger.AcquireLock(a.cfg.StateDir)
		if err != nil {
			if errors.Is(err, ledger.ErrLocked) {
				return fmt.Errorf("another exporter is using %s", a.cfg.StateDir)
			}
			return err
		}
		defer lock.Release()
	}

	l, err := a.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	deps := exporter.Deps{Ledger: l}
	if opts.dryRun {
		deps.Ledger = l.Fork()
		deps.NewSink = func(string) exporter.HandSink { return exporter.DiscardSink{} }
	}

	e, err := exporter.New(a.cfg, deps, exporter.WithFollow(opts.follow))
	if err != nil {
		return err
	}
	if err := e.Start(logPath, exportDir); err != nil {
		return err
	}

	go func() {
		select {
		case <-ctx.Done():
			e.Stop()
		case <-e.Done():
		}
	}()

	painter := util.NewPainter(out)
	for ev := range e.Events() {
		fmt.Fprintln(out, describeEvent(painter, ev, opts.dryRun))
	}
	err = e.Wait()

	stats := e.Stats()
	fmt.Fprintf(out, "%s %d converted, %d skipped, %d dropped, %d failed\n",
		painter.Title("Done:"), stats.Converted, stats.Skipped, stats.Dropped, stats.Failed)
	if stats.EventsLost > 0 {
		fmt.Fprintf(out, "%d events were not shown\n", stats.EventsLost)
	}
	return err
}

func (a *app) openLedger() (*ledger.Ledger, error) {
	store, err := ledger.OpenStore(a.cfg.Ledger, a.cfg.StateDir)
	if err != nil {
		return nil, err
	}
	l, err := ledger.Open(store)
	if err != nil {
		store.Close()
		return nil, err
	}
	return l, nil
}

func describeEvent(p util.Painter, ev model.Event, dryRun bool) string {
	stamp := ev.At.Format(time.TimeOnly)
	handTime := ev.HandTime.Format(constants.HandTimeLayout)

	switch ev.Kind {
	case model.EventConverted:
		verb := "exported"
		if dryRun {
			verb = "would export"
		}
		return fmt.Sprintf("%s %s hand #%d (%s) to %q", stamp, p.OK(verb), ev.HandID, handTime, ev.Table)
	case model.EventSkipped:
		return fmt.Sprintf("%s skipped hand from %s, already exported", stamp, handTime)
	case model.EventDropped:
		return fmt.Sprintf("%s %s %v", stamp, p.Warn("dropped"), ev.Err)
	default:
		return fmt.Sprintf("%s %s %v", stamp, p.Bad("failed"), ev.Err)
	}
}

// Package exporter runs the tail, assemble, convert, commit and append
// pipeline on one background goroutine.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/penwyp/psvr-exporter/internal/config"
	"github.com/penwyp/psvr-exporter/internal/core/converter"
	"github.com/penwyp/psvr-exporter/internal/core/model"
	"github.com/penwyp/psvr-exporter/internal/data/assembler"
	"github.com/penwyp/psvr-exporter/internal/data/router"
	"github.com/penwyp/psvr-exporter/internal/data/tailer"
	"github.com/penwyp/psvr-exporter/internal/util"
)

const defaultEventBuffer = 256

// Deps are the collaborators of an Exporter. Only Ledger is required.
type Deps struct {
	Ledger    HandLedger
	Converter HandConverter
	// NewSink builds the sink for an export directory; defaults to a
	// router using the configured line ending.
	NewSink func(exportDir string) HandSink
	Logger  util.LoggerInterface
}

// Option tweaks an Exporter at construction.
type Option func(*Exporter)

// WithFollow controls whether the exporter keeps tailing at end of file.
// Follow is the default; without it Wait returns after the first EOF.
func WithFollow(follow bool) Option {
	return func(e *Exporter) { e.follow = follow }
}

// WithEventBuffer sets the capacity of the events channel.
func WithEventBuffer(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.events = make(chan model.Event, n)
		}
	}
}

// Stats counts record outcomes since Start.
type Stats struct {
	Converted int64
	Skipped   int64
	Dropped   int64
	Failed    int64
	// Abandoned counts hands whose end marker never arrived.
	Abandoned int64
	// EventsLost counts events not delivered because the channel was full.
	EventsLost int64
}

// Exporter converts hands from one log file into per-table export files.
type Exporter struct {
	cfg    *config.Config
	ledger HandLedger
	conv   HandConverter
	sinkFn func(string) HandSink
	logger util.LoggerInterface
	follow bool

	events chan model.Event

	converted  atomic.Int64
	skipped    atomic.Int64
	dropped    atomic.Int64
	failed     atomic.Int64
	abandoned  atomic.Int64
	eventsLost atomic.Int64

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
}

// New creates an exporter. It does not touch the file system until Start.
func New(cfg *config.Config, deps Deps, opts ...Option) (*Exporter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Ledger == nil {
		return nil, errors.New("exporter requires a ledger")
	}

	e := &Exporter{
		cfg:    cfg,
		ledger: deps.Ledger,
		conv:   deps.Converter,
		sinkFn: deps.NewSink,
		logger: deps.Logger,
		follow: true,
		events: make(chan model.Event, defaultEventBuffer),
		done:   make(chan struct{}),
	}
	if e.conv == nil {
		e.conv = converter.New(util.GetTimeProvider())
	}
	if e.sinkFn == nil {
		e.sinkFn = func(dir string) HandSink { return router.New(dir, cfg.Terminator()) }
	}
	if e.logger == nil {
		e.logger = util.GetLogger()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Start validates both paths, opens the log and launches the worker.
// It fails with model.ErrIO when the log file or export directory is
// missing.
func (e *Exporter) Start(logPath, exportDir string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return errors.New("exporter already started")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		return fmt.Errorf("%w: log file %s: %v", model.ErrIO, logPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: log file %s is a directory", model.ErrIO, logPath)
	}
	info, err = os.Stat(exportDir)
	if err != nil {
		return fmt.Errorf("%w: export directory %s: %v", model.ErrIO, exportDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: export directory %s is not a directory", model.ErrIO, exportDir)
	}

	t, err := tailer.Open(logPath, tailer.Options{
		PollInterval: e.cfg.PollInterval,
		Encoding:     e.cfg.Encoding,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.started = true

	w := &worker{
		Exporter: e,
		tail:     t,
		asm:      assembler.New(),
		sink:     e.sinkFn(exportDir),
		log: e.logger.With(
			util.Field{Key: "run_id", Value: uuid.NewString()},
			util.Field{Key: "log", Value: logPath},
		),
	}
	w.log.Info("Exporter started",
		util.Field{Key: "export_dir", Value: exportDir},
		util.Field{Key: "follow", Value: e.follow})

	go func() {
		err := w.run(ctx)
		_ = t.Close()

		e.mu.Lock()
		e.err = err
		e.mu.Unlock()

		w.log.Info("Exporter stopped",
			util.Field{Key: "converted", Value: e.converted.Load()},
			util.Field{Key: "skipped", Value: e.skipped.Load()},
			util.Field{Key: "dropped", Value: e.dropped.Load()},
			util.Field{Key: "failed", Value: e.failed.Load()})
		close(e.events)
		close(e.done)
	}()
	return nil
}

// Stop asks the worker to finish. It returns at once and may be called
// any number of times, before or after Start.
func (e *Exporter) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// Wait blocks until the worker has exited and returns its terminal error.
// Without a prior Start it returns immediately.
func (e *Exporter) Wait() error {
	e.mu.Lock()
	started := e.started
	e.mu.Unlock()
	if !started {
		return nil
	}

	<-e.done
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Done is closed when the worker exits.
func (e *Exporter) Done() <-chan struct{} {
	return e.done
}

// Events delivers one event per assembled record plus I/O failures. The
// channel is closed when the worker exits. Events are dropped, not
// queued, when nobody keeps up.
func (e *Exporter) Events() <-chan model.Event {
	return e.events
}

// Stats returns the outcome counters.
func (e *Exporter) Stats() Stats {
	return Stats{
		Converted:  e.converted.Load(),
		Skipped:    e.skipped.Load(),
		Dropped:    e.dropped.Load(),
		Failed:     e.failed.Load(),
		Abandoned:  e.abandoned.Load(),
		EventsLost: e.eventsLost.Load(),
	}
}

func (e *Exporter) publish(ev model.Event) {
	ev.At = time.Now()
	select {
	case e.events <- ev:
	default:
		e.eventsLost.Add(1)
	}
}

package exporter

import (
	"context"
	"errors"
	"io"

	"github.com/penwyp/psvr-exporter/internal/core/model"
	"github.com/penwyp/psvr-exporter/internal/data/assembler"
	"github.com/penwyp/psvr-exporter/internal/data/tailer"
	"github.com/penwyp/psvr-exporter/internal/util"
)

// worker owns everything the background goroutine touches.
type worker struct {
	*Exporter
	tail *tailer.Tailer
	asm  *assembler.Assembler
	sink HandSink
	log  util.LoggerInterface

	// abandoned records already folded into the exporter's counter
	seenAbandoned int
}

// run reads lines until ctx is cancelled or, outside follow mode, the end
// of the file. Stop is honoured between lines; a record in progress is
// discarded.
func (w *worker) run(ctx context.Context) error {
	defer w.discardPartial()

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := w.tail.Next()
		switch {
		case err == nil:
			if line.Empty {
				continue
			}
			record, ok := w.asm.Push(line.Text)
			w.syncAbandoned()
			if ok {
				w.processRecord(record)
			}

		case errors.Is(err, io.EOF):
			if !w.follow {
				return nil
			}
			if err := w.waitForData(ctx); err != nil {
				return nil
			}

		case errors.Is(err, model.ErrIO):
			w.fail(err)
			if err := w.waitForData(ctx); err != nil {
				return nil
			}

		default:
			// Undecodable line, it has been consumed
			w.fail(err)
		}
	}
}

// waitForData sleeps until the log may have grown. A truncated log is
// re-read from the start, so any half-collected record is dropped. The
// returned error is only ever ctx's.
func (w *worker) waitForData(ctx context.Context) error {
	before := w.tail.Offset()
	if err := w.tail.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Transient, retried on the next poll
		w.fail(err)
		return nil
	}
	if w.tail.Offset() < before {
		w.log.Info("Log restarted, discarding partial hand")
		w.discardPartial()
	}
	return nil
}

func (w *worker) discardPartial() {
	w.asm.Reset()
	w.syncAbandoned()
}

func (w *worker) syncAbandoned() {
	if n := w.asm.Abandoned(); n > w.seenAbandoned {
		w.log.Debug("Discarding unfinished hand", util.Field{Key: "count", Value: n - w.seenAbandoned})
		w.abandoned.Add(int64(n - w.seenAbandoned))
		w.seenAbandoned = n
	}
}

// processRecord takes one complete record through dedup, conversion,
// ledger commit and output. The ledger is committed before the append so
// a crash in between loses the hand rather than writing it twice.
func (w *worker) processRecord(record model.RawRecord) {
	handTime, err := w.conv.HandTime(record.Header())
	if err != nil {
		w.drop(err)
		return
	}

	if w.ledger.AlreadyConverted(handTime) {
		w.skipped.Add(1)
		w.log.Debug("Hand already converted", util.Field{Key: "hand_time", Value: handTime})
		w.publish(model.Event{Kind: model.EventSkipped, HandTime: handTime})
		return
	}

	hand, err := w.conv.Convert(record, w.ledger.NextID())
	if err != nil {
		w.drop(err)
		return
	}

	if err := w.ledger.Commit(hand.Time, hand.ID); err != nil {
		w.fail(err)
		return
	}

	if err := w.sink.Append(hand.Table, hand.Lines); err != nil {
		w.log.Error("Hand committed but not written",
			util.Field{Key: "hand_id", Value: hand.ID},
			util.Field{Key: "table", Value: hand.Table},
			util.Field{Key: "error", Value: err.Error()})
		w.failed.Add(1)
		w.publish(model.Event{Kind: model.EventFailed, HandID: hand.ID, Table: hand.Table, HandTime: hand.Time, Err: err})
		return
	}

	w.converted.Add(1)
	w.log.Info("Hand converted",
		util.Field{Key: "hand_id", Value: hand.ID},
		util.Field{Key: "table", Value: hand.Table})
	w.publish(model.Event{Kind: model.EventConverted, HandID: hand.ID, Table: hand.Table, HandTime: hand.Time})
}

func (w *worker) drop(err error) {
	w.dropped.Add(1)
	w.log.Warn("Dropping hand", util.Field{Key: "error", Value: err.Error()})
	w.publish(model.Event{Kind: model.EventDropped, Err: err})
}

func (w *worker) fail(err error) {
	w.failed.Add(1)
	w.log.Error("Export step failed", util.Field{Key: "error", Value: err.Error()})
	w.publish(model.Event{Kind: model.EventFailed, Err: err})
}

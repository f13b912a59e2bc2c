package exporter

import (
	"time"

	"github.com/penwyp/psvr-exporter/internal/core/model"
)

// HandLedger decides which hands still need converting and hands out ids.
// *ledger.Ledger implements it.
type HandLedger interface {
	AlreadyConverted(t time.Time) bool
	NextID() int64
	Commit(t time.Time, id int64) error
}

// HandSink receives converted hands. *router.Router implements it.
type HandSink interface {
	Append(table string, lines []string) error
}

// HandConverter is the pure transformation step.
// *converter.Converter implements it.
type HandConverter interface {
	HandTime(header string) (time.Time, error)
	Convert(record model.RawRecord, id int64) (*model.ConvertedHand, error)
}

// DiscardSink accepts every hand and writes nothing.
type DiscardSink struct{}

func (DiscardSink) Append(string, []string) error { return nil }

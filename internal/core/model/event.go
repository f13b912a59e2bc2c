package model

import (
	"fmt"
	"time"
)

// EventKind classifies what happened to a hand record.
type EventKind int

const (
	EventConverted EventKind = iota
	EventSkipped
	EventDropped
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventConverted:
		return "converted"
	case EventSkipped:
		return "skipped"
	case EventDropped:
		return "dropped"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is published by the exporter for every assembled record and for
// steady-state I/O failures. Front ends subscribe to these instead of the
// exporter writing to the user directly.
type Event struct {
	Kind     EventKind
	HandID   int64
	Table    string
	HandTime time.Time
	Err      error
	At       time.Time
}

func (e Event) String() string {
	switch e.Kind {
	case EventConverted:
		return fmt.Sprintf("hand #%d (%s) -> %s", e.HandID, e.HandTime.Format("2006-01-02 15:04:05"), e.Table)
	case EventSkipped:
		return fmt.Sprintf("hand at %s already converted", e.HandTime.Format("2006-01-02 15:04:05"))
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

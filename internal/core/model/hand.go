package model

import "time"

// RawRecord is one hand as written by the source client, from its header
// line to its board summary line inclusive. Empty lines are never stored.
type RawRecord struct {
	Lines []string
}

// Header returns the start-marker line, or "" for an empty record.
func (r RawRecord) Header() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return r.Lines[0]
}

// Clone returns a copy whose line slice can be mutated freely.
func (r RawRecord) Clone() RawRecord {
	lines := make([]string, len(r.Lines))
	copy(lines, r.Lines)
	return RawRecord{Lines: lines}
}

// ConvertedHand is a hand rewritten into the target format, ready to be
// committed to the ledger and appended to its table file.
type ConvertedHand struct {
	ID    int64
	Time  time.Time
	Table string
	Lines []string
}

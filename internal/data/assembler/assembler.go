package assembler

import (
	"regexp"

	"github.com/penwyp/psvr-exporter/internal/core/model"
)

var (
	startMarker = regexp.MustCompile(`^PokerStars Hand +`)
	endMarker   = regexp.MustCompile(`^Board\[.*\]`)
)

// IsStart reports whether line opens a hand record.
func IsStart(line string) bool {
	return startMarker.MatchString(line)
}

// IsEnd reports whether line is the board summary that closes a record.
func IsEnd(line string) bool {
	return endMarker.MatchString(line)
}

type state int

const (
	stateIdle state = iota
	stateCollecting
)

// Assembler groups lines into hand records. A record only leaves the
// assembler when it opened with a start marker and closed with an end
// marker; anything interrupted in between is dropped.
type Assembler struct {
	state     state
	buf       []string
	emitted   int
	abandoned int
}

// New creates an idle assembler.
func New() *Assembler {
	return &Assembler{}
}

// Push feeds one non-empty line. It returns a record and true when line
// completed one.
func (a *Assembler) Push(line string) (model.RawRecord, bool) {
	if line == "" {
		return model.RawRecord{}, false
	}

	if IsStart(line) {
		if a.state == stateCollecting {
			// Client went away mid-hand, that hand never gets an end marker
			a.abandoned++
		}
		a.buf = []string{line}
		a.state = stateCollecting
		return model.RawRecord{}, false
	}

	if a.state == stateIdle {
		return model.RawRecord{}, false
	}

	a.buf = append(a.buf, line)
	if !IsEnd(line) {
		return model.RawRecord{}, false
	}

	record := model.RawRecord{Lines: a.buf}
	a.buf = nil
	a.state = stateIdle

	if !IsStart(record.Header()) {
		return model.RawRecord{}, false
	}
	a.emitted++
	return record, true
}

// Reset drops a partially collected record.
func (a *Assembler) Reset() {
	if a.state == stateCollecting {
		a.abandoned++
	}
	a.buf = nil
	a.state = stateIdle
}

// Collecting reports whether a record is in progress.
func (a *Assembler) Collecting() bool {
	return a.state == stateCollecting
}

// Emitted returns how many complete records were produced.
func (a *Assembler) Emitted() int {
	return a.emitted
}

// Abandoned returns how many started records were discarded.
func (a *Assembler) Abandoned() int {
	return a.abandoned
}

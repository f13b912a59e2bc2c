package constants

import "time"

const (
	// PollInterval is how long the tailer sleeps at end of file when no
	// file system notification arrives.
	PollInterval = 100 * time.Millisecond

	// EasternZone is the zone the target format prints in brackets.
	EasternZone = "America/New_York"

	// HandTimeLayout is how both header timestamps are printed.
	HandTimeLayout = "2006/01/02 15:04:05"

	// CursorLayout is how the resume cursor is persisted.
	CursorLayout = time.RFC3339
)

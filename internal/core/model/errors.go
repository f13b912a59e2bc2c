package model

import "errors"

var (
	// ErrMalformedInput means a record reached the converter without the
	// header, table or seat grammar it relies on.
	ErrMalformedInput = errors.New("malformed hand record")

	// ErrUnparsableTimestamp means the header carries a date-time substring
	// that is not a valid calendar time.
	ErrUnparsableTimestamp = errors.New("unparsable hand timestamp")

	// ErrIO wraps file system failures on the log, export dir or state.
	ErrIO = errors.New("i/o failure")

	// ErrLedgerConflict is returned when a commit would move the cursor
	// backwards or skip/reuse a hand id.
	ErrLedgerConflict = errors.New("ledger conflict")
)

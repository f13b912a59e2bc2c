package ledger

import (
	"errors"
	"os"
)

// LockFileName is created in the state directory while an exporter runs.
const LockFileName = "exporter.lock"

// ErrLocked is returned when another exporter holds the state directory.
var ErrLocked = errors.New("state directory is locked by another exporter")

// Lock guards a state directory against a second exporter instance
// interleaving ledger commits.
type Lock struct {
	file *os.File
	path string
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

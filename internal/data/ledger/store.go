package ledger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/penwyp/psvr-exporter/internal/core/model"
)

// Store is the durable key-value collaborator behind the ledger.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set writes all values as one atomic, durable update.
	Set(values map[string]string) error
	Close() error
}

// StorePath returns where the backend named by kind keeps its data, or ""
// for the memory store.
func StorePath(kind, stateDir string) string {
	switch kind {
	case model.StoreJSON, "":
		return filepath.Join(stateDir, "ledger.json")
	case model.StoreSQLite:
		return filepath.Join(stateDir, "ledger.db")
	default:
		return ""
	}
}

// OpenStore opens the backend named by kind inside stateDir.
func OpenStore(kind, stateDir string) (Store, error) {
	switch kind {
	case model.StoreMemory:
		return NewMemoryStore(), nil
	case model.StoreJSON, "":
		return NewJSONStore(StorePath(kind, stateDir))
	case model.StoreSQLite:
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create state dir: %v", model.ErrIO, err)
		}
		return OpenSQLiteStore(StorePath(kind, stateDir))
	default:
		return nil, fmt.Errorf("unknown ledger store %q (json, sqlite, memory)", kind)
	}
}

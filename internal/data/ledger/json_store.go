package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/psvr-exporter/internal/core/model"
)

type ledgerDocument struct {
	Values    map[string]string `json:"values"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// JSONStore keeps all values in one JSON document. Every Set rewrites the
// document through a synced temp file and a rename, so a crash leaves
// either the old or the new document, never a mix.
type JSONStore struct {
	path   string
	mu     sync.RWMutex
	values map[string]string
}

// NewJSONStore loads path, or starts empty when it does not exist yet.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: create state dir: %v", model.ErrIO, err)
	}

	s := &JSONStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", model.ErrIO, path, err)
	}

	var doc ledgerDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt ledger file %s: %w", path, err)
	}
	for k, v := range doc.Values {
		s.values[k] = v
	}
	return s, nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *JSONStore) Set(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.values)+len(values))
	for k, v := range s.values {
		next[k] = v
	}
	for k, v := range values {
		next[k] = v
	}

	data, err := sonic.ConfigStd.MarshalIndent(ledgerDocument{Values: next, UpdatedAt: time.Now()}, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}

	s.values = next
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// Path returns the document location.
func (s *JSONStore) Path() string {
	return s.path
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp ledger: %v", model.ErrIO, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write temp ledger: %v", model.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync temp ledger: %v", model.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp ledger: %v", model.ErrIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replace ledger: %v", model.ErrIO, err)
	}
	return nil
}

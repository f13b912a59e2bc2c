// Package router appends converted hands to one text file per table.
package router

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/penwyp/psvr-exporter/internal/core/constants"
	"github.com/penwyp/psvr-exporter/internal/core/model"
)

// Router writes hands under a single export directory.
type Router struct {
	dir        string
	lineEnding string

	mu sync.Mutex
}

// OutputFile describes one per-table export file.
type OutputFile struct {
	Name  string
	Path  string
	Size  int64
	Hands int
}

// New creates a router for dir. An empty lineEnding means "\n".
func New(dir, lineEnding string) *Router {
	if lineEnding == "" {
		lineEnding = "\n"
	}
	return &Router{dir: dir, lineEnding: lineEnding}
}

// Dir returns the export directory.
func (r *Router) Dir() string {
	return r.dir
}

// PathFor returns the file a hand played at table is appended to.
func (r *Router) PathFor(table string) string {
	return filepath.Join(r.dir, SanitizeFileName(table)+constants.OutputExt)
}

// Append writes lines to the table's file, creating it on first use. The
// whole hand goes out in one Write so a reader never sees half of it.
func (r *Router) Append(table string, lines []string) error {
	path := r.PathFor(table)

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString(r.lineEnding)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", model.ErrIO, path, err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %s: %v", model.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", model.ErrIO, path, err)
	}
	return nil
}

// Files lists the export files sorted by name, counting the hands in each.
func (r *Router) Files() ([]OutputFile, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", model.ErrIO, r.dir, err)
	}

	var files []OutputFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != constants.OutputExt {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		hands, err := CountHands(path)
		if err != nil {
			return nil, err
		}
		files = append(files, OutputFile{
			Name:  strings.TrimSuffix(entry.Name(), constants.OutputExt),
			Path:  path,
			Size:  info.Size(),
			Hands: hands,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

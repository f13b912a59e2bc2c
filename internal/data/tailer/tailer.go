// Package tailer follows a text file that another process keeps appending
// to, handing out complete lines and waiting at end of file.
package tailer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/psvr-exporter/internal/core/constants"
	"github.com/penwyp/psvr-exporter/internal/core/model"
	"github.com/penwyp/psvr-exporter/internal/util"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Line is one line of the followed file, without its line terminator.
type Line struct {
	Text string
	// Empty is set for blank lines. The source client sometimes writes
	// stray line terminators, callers skip these.
	Empty bool
}

// Options configures a Tailer.
type Options struct {
	// PollInterval bounds how long Wait sleeps without a notification.
	PollInterval time.Duration
	// Encoding is an IANA/WHATWG charset name, e.g. "utf-8" or "windows-1252".
	Encoding string
	// DisableWatch turns off fsnotify and relies on polling alone.
	DisableWatch bool
}

// Tailer reads lines from a growing file. The read offset is never
// rewound except when the file is truncated below it.
type Tailer struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	decoder *encoding.Decoder
	opts    Options

	offset  int64
	pending []byte

	watcher *fsnotify.Watcher
	wake    chan struct{}
	done    chan struct{}
}

// Open opens path for shared reading, positioned at its start.
func Open(path string, opts Options) (*Tailer, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = constants.PollInterval
	}
	if opts.Encoding == "" {
		opts.Encoding = "utf-8"
	}

	enc, err := htmlindex.Get(opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", opts.Encoding, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", model.ErrIO, path, err)
	}

	t := &Tailer{
		path:    path,
		file:    file,
		reader:  bufio.NewReaderSize(file, 64*1024),
		decoder: enc.NewDecoder(),
		opts:    opts,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	if !opts.DisableWatch {
		if err := t.watch(); err != nil {
			// Polling still works without notifications
			util.LogWarnf("File notifications unavailable for %s, polling every %v: %v", path, opts.PollInterval, err)
		}
	}

	return t, nil
}

// watch subscribes to the file's directory; watching the file itself
// misses events on platforms where the writer replaces it.
func (t *Tailer) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(t.path)); err != nil {
		watcher.Close()
		return err
	}
	t.watcher = watcher

	go t.processEvents()
	return nil
}

func (t *Tailer) processEvents() {
	target := filepath.Clean(t.path)
	for {
		select {
		case <-t.done:
			return
		case event, ok := <-t.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				t.notify()
			}
		case err, ok := <-t.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (t *Tailer) notify() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// Next returns the next complete line. At the current end of the file it
// returns io.EOF; a trailing fragment without terminator is kept until
// the writer completes it.
func (t *Tailer) Next() (Line, error) {
	chunk, err := t.reader.ReadBytes('\n')
	t.offset += int64(len(chunk))

	if err != nil {
		if errors.Is(err, io.EOF) {
			t.pending = append(t.pending, chunk...)
			return Line{}, io.EOF
		}
		return Line{}, fmt.Errorf("%w: read %s: %v", model.ErrIO, t.path, err)
	}

	if len(t.pending) > 0 {
		chunk = append(t.pending, chunk...)
		t.pending = nil
	}

	raw := bytes.TrimRight(chunk, "\r\n")
	text, err := t.decoder.Bytes(raw)
	if err != nil {
		return Line{}, fmt.Errorf("decode line at offset %d: %w", t.offset, err)
	}

	line := strings.TrimPrefix(string(text), "\ufeff")
	return Line{Text: line, Empty: strings.TrimSpace(line) == ""}, nil
}

// Wait blocks until the file may have grown: a write notification, the
// poll interval, or ctx cancellation (returned as ctx.Err()).
func (t *Tailer) Wait(ctx context.Context) error {
	timer := time.NewTimer(t.opts.PollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.wake:
	case <-timer.C:
	}

	return t.checkTruncation()
}

// checkTruncation restarts from the beginning when the file shrank below
// what has been read, e.g. the client started a fresh log.
func (t *Tailer) checkTruncation() error {
	info, err := os.Stat(t.path)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %v", model.ErrIO, t.path, err)
	}
	if info.Size() >= t.offset {
		return nil
	}

	util.LogInfof("Log file %s truncated (size %d < offset %d), reading from start", t.path, info.Size(), t.offset)
	return t.reopen()
}

func (t *Tailer) reopen() error {
	file, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("%w: reopen %s: %v", model.ErrIO, t.path, err)
	}
	t.file.Close()

	t.file = file
	t.reader.Reset(file)
	t.offset = 0
	t.pending = nil
	return nil
}

// Offset returns the number of bytes consumed so far, including a held
// back partial line.
func (t *Tailer) Offset() int64 {
	return t.offset
}

// Path returns the followed file.
func (t *Tailer) Path() string {
	return t.path
}

// Close stops notifications and closes the file.
func (t *Tailer) Close() error {
	select {
	case <-t.done:
		return nil
	default:
		close(t.done)
	}

	if t.watcher != nil {
		t.watcher.Close()
	}
	return t.file.Close()
}

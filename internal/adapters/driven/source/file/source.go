// Package file reads robots.txt files from the local filesystem and watches
// them for changes.
package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/robots-cli/internal/core/domain"
	"github.com/custodia-labs/robots-cli/internal/core/ports/driven"
	"github.com/custodia-labs/robots-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.RobotsSource = (*Source)(nil)

// Stdin is the location that reads standard input.
const Stdin = "-"

// DefaultDebounce is how long Watch waits for more events before re-reading.
const DefaultDebounce = 100 * time.Millisecond

// Source reads robots.txt files by path.
type Source struct {
	stdin    io.Reader
	debounce time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithStdin replaces standard input for the "-" location.
func WithStdin(r io.Reader) Option {
	return func(s *Source) {
		s.stdin = r
	}
}

// WithDebounce sets how long Watch coalesces bursts of events.
func WithDebounce(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewSource creates a filesystem source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		stdin:    os.Stdin,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns the content at location, or standard input for "-".
func (s *Source) Read(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if location == Stdin {
		body, err := io.ReadAll(s.stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %v", domain.ErrSourceUnavailable, err)
		}
		return body, nil
	}

	body, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	return body, nil
}

// Watch sends the current content of the file, then the new content after
// every change, until ctx is done. The channel is closed when watching stops.
//
// The parent directory is watched so that editors replacing the file by
// rename are followed.
func (s *Source) Watch(ctx context.Context, location string) (<-chan domain.SourceUpdate, error) {
	if location == Stdin {
		return nil, fmt.Errorf("%w: cannot watch stdin", domain.ErrInvalidInput)
	}

	path, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	initial, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	updates := make(chan domain.SourceUpdate, 1)
	updates <- domain.SourceUpdate{Location: location, Body: initial}

	w := &watch{
		location: location,
		path:     path,
		debounce: s.debounce,
		fsw:      fsw,
		updates:  updates,
		last:     initial,
	}
	go w.run(ctx)

	return updates, nil
}

// watch is one running Watch call.
type watch struct {
	location string
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	updates  chan domain.SourceUpdate

	// last is the most recently delivered content.
	last []byte
	// failed is set after a read error was delivered.
	failed bool
}

func (w *watch) run(ctx context.Context) {
	defer close(w.updates)
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || event.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("Watch: %s %s", event.Op, w.location)
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			if !w.reload(ctx) {
				return
			}
		}
	}
}

// reload re-reads the file and delivers it if it changed. It returns false
// when ctx ended while delivering.
func (w *watch) reload(ctx context.Context) bool {
	body, err := os.ReadFile(w.path)
	var update domain.SourceUpdate
	switch {
	case err != nil:
		if w.failed {
			return true
		}
		w.failed = true
		update = domain.SourceUpdate{
			Location: w.location,
			Err:      fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err),
		}
	case !w.failed && bytes.Equal(body, w.last):
		return true
	default:
		w.failed = false
		w.last = body
		update = domain.SourceUpdate{Location: w.location, Body: body}
	}

	select {
	case w.updates <- update:
		return true
	case <-ctx.Done():
		return false
	}
}

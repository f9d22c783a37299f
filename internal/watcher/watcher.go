// Package watcher reports external changes to the file being edited.
//
// A FileWatcher watches the directory holding the file, so saves that
// replace the file by rename are still seen, and coalesces bursts of
// events for the file into a single Event after a short delay.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/quillpad/internal/logging"
)

// Common errors returned by watcher operations.
var (
	ErrPathNotExist = errors.New("path does not exist")
)

// DefaultDelay is the debounce window applied to file events.
const DefaultDelay = 100 * time.Millisecond

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	if op == 0 {
		return "NONE"
	}
	var names []string
	for _, o := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
	} {
		if op.Has(o.op) {
			names = append(names, o.name)
		}
	}
	return strings.Join(names, "|")
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event represents a coalesced change to the watched file.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string

	// Op combines every operation seen during the debounce window.
	Op Op

	// Timestamp is when the event was delivered.
	Timestamp time.Time
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDelay sets the debounce window.
func WithDelay(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *FileWatcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// FileWatcher watches a single file for external modification.
type FileWatcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	path    string
	delay   time.Duration
	logger  *logging.Logger

	// suppressUntil drops events caused by our own saves.
	suppressUntil time.Time

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New starts watching path. The file itself need not exist yet, but its
// directory must.
func New(path string, opts ...Option) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		watcher: fsw,
		path:    absPath,
		delay:   DefaultDelay,
		logger:  logging.Default(),
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("watcher").WithField("path", absPath)

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Events returns the event channel. It is closed by Close.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Suppress drops events observed during the next d. Call it right before
// writing the file so the editor does not report its own save.
func (w *FileWatcher) Suppress(d time.Duration) {
	w.mu.Lock()
	w.suppressUntil = time.Now().Add(d)
	w.mu.Unlock()
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	var (
		pending Op
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			op := w.filter(fsEvent)
			if op == 0 {
				continue
			}
			pending |= op
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.sendEvent(Event{Path: w.path, Op: pending, Timestamp: time.Now()})
			pending = 0

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// filter converts an fsnotify event for the watched file, returning zero
// for events about other files, permission-only changes and suppressed
// writes.
func (w *FileWatcher) filter(fsEvent fsnotify.Event) Op {
	if filepath.Clean(fsEvent.Name) != w.path {
		return 0
	}

	op := convertOp(fsEvent.Op)
	if op == 0 {
		return 0
	}

	w.mu.Lock()
	suppressed := time.Now().Before(w.suppressUntil)
	w.mu.Unlock()
	if suppressed {
		w.logger.Debug("suppressed %s", op)
		return 0
	}
	return op
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

func (w *FileWatcher) sendEvent(event Event) {
	select {
	case w.events <- event:
	default:
		w.logger.Warn("event channel full, dropping %s", event.Op)
	}
}

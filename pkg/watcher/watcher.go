// Package watcher reports changes to a menu source file so the terminal
// host can rebuild the menu. It uses fsnotify where the filesystem
// delivers events and falls back to polling on network mounts.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/openmenu/pkg/clock"
	"github.com/vanderheijden86/openmenu/pkg/debug"
)

// DefaultPollInterval is the default polling interval for fallback mode.
const DefaultPollInterval = 2 * time.Second

// Common errors.
var (
	ErrFileRemoved    = errors.New("watched file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the file must stay quiet before a change is
// reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithOnError sets the callback invoked on errors. It runs on the
// watcher's goroutine.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// WithForcePoll forces polling mode even if fsnotify is available.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// WithClock sets the clock driving the debouncer.
func WithClock(c clock.Clock) Option {
	return func(w *Watcher) { w.clock = c }
}

// Watcher monitors one file.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	onError      func(error)
	forcePoll    bool
	clock        clock.Clock

	mu        sync.RWMutex
	fsType    FilesystemType
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	polling   bool
	lastMtime time.Time
	lastSize  int64
	cancel    context.CancelFunc
	started   bool

	changeCh chan struct{}
}

// New returns a watcher for path. It does nothing until Start.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:         absPath,
		debounce:     DefaultDebounceDuration,
		pollInterval: DefaultPollInterval,
		onError:      func(error) {},
		clock:        clock.Real(),
		changeCh:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.clock, w.debounce)
	return w, nil
}

// Start begins watching. The watcher stops when ctx is done or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	info, err := os.Stat(w.path)
	switch {
	case os.IsPermission(err):
		return ErrPermission
	case err != nil:
		// Not created yet; the first write is a change.
		w.lastMtime, w.lastSize = time.Time{}, 0
	default:
		w.lastMtime, w.lastSize = info.ModTime(), info.Size()
	}

	ctx, w.cancel = context.WithCancel(ctx)

	w.fsType = detectFilesystemTypeFunc(w.path)
	w.polling = w.forcePoll || envBool("OPENMENU_FORCE_POLL") || w.fsType.Remote()

	if !w.polling {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			// The directory, so atomic replace-by-rename is seen.
			err = fsw.Add(filepath.Dir(w.path))
			if err != nil {
				fsw.Close()
			}
		}
		if err != nil {
			debug.Log("watcher: fsnotify unavailable for %s: %v", w.path, err)
			w.polling = true
		} else {
			w.fsWatcher = fsw
			go w.watchFsnotify(ctx, fsw)
		}
	}
	if w.polling {
		go w.watchPolling(ctx)
	}

	debug.Log("watcher: watching %s (fs=%s, polling=%v)", w.path, w.fsType, w.polling)
	w.started = true
	return nil
}

// Stop stops watching. Changed is left open so a pending receive simply
// never completes.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}
	w.debouncer.Cancel()
	w.started = false
}

// IsPolling reports whether the watcher fell back to polling.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.polling
}

// IsStarted reports whether the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// Changed receives once per debounced change. Changes that arrive while
// a previous one is unread are merged.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// FilesystemType returns the classification made by Start.
func (w *Watcher) FilesystemType() FilesystemType {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fsType
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func (w *Watcher) watchFsnotify(ctx context.Context, fsw *fsnotify.Watcher) {
	target := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				w.onError(ErrFileRemoved)
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				w.debouncer.Trigger(w.notifyChange)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) watchPolling(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

// poll compares the file's size and mtime with the last observation.
func (w *Watcher) poll() {
	info, err := os.Stat(w.path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			w.mu.RLock()
			hadFile := !w.lastMtime.IsZero()
			w.mu.RUnlock()
			if hadFile {
				w.onError(ErrFileRemoved)
			}
		case os.IsPermission(err):
			w.onError(ErrPermission)
		default:
			w.onError(err)
		}
		return
	}

	w.mu.Lock()
	changed := info.ModTime().After(w.lastMtime) || info.Size() != w.lastSize
	if changed {
		w.lastMtime, w.lastSize = info.ModTime(), info.Size()
	}
	w.mu.Unlock()

	if changed {
		w.debouncer.Trigger(w.notifyChange)
	}
}

func (w *Watcher) notifyChange() {
	if !w.IsStarted() {
		return
	}
	debug.Log("watcher: %s changed", w.path)
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}

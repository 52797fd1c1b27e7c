// Package watch triggers regeneration when source, manifest, or
// configuration files change. It watches directory trees with fsnotify,
// falling back to modification-time polling when the platform watcher is
// unavailable, and debounces bursts of events into a single callback.
package watch

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Default intervals. Debounce absorbs editor save bursts; the poll
// interval only applies to the fallback.
const (
	DefaultDebounce     = 250 * time.Millisecond
	DefaultPollInterval = time.Second
)

// relevantExts are the file suffixes that trigger regeneration.
var relevantExts = []string{".go", ".toml", ".yaml", ".yml", ".json"}

// Watcher invokes a callback after changes under a set of root
// directories go quiet.
type Watcher struct {
	roots    []string
	debounce time.Duration
	poll     time.Duration
	log      *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before the callback fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the fallback polling cadence.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.poll = d }
}

// WithLogger sets the progress logger.
func WithLogger(log *slog.Logger) Option {
	return func(w *Watcher) { w.log = log }
}

// New returns a Watcher over the given roots.
func New(roots []string, opts ...Option) *Watcher {
	w := &Watcher{
		roots:    roots,
		debounce: DefaultDebounce,
		poll:     DefaultPollInterval,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks, invoking fn after each debounced batch of relevant changes,
// until ctx is done. A callback error is logged and watching continues;
// regeneration problems should not kill the watch loop.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Warn("fsnotify unavailable, falling back to polling", "error", err)
		return w.runPolling(ctx, fn)
	}
	defer watcher.Close()

	for _, root := range w.roots {
		if err := w.addRecursive(watcher, root); err != nil {
			watcher.Close()
			w.log.Warn("directory registration failed, falling back to polling", "error", err)
			return w.runPolling(ctx, fn)
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New subdirectories need their own watch.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !skipDirName(filepath.Base(event.Name)) {
						_ = w.addRecursive(watcher, event.Name)
					}
					continue
				}
			}
			if !relevant(event.Name) {
				continue
			}
			w.log.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			if err := fn(ctx); err != nil {
				w.log.Warn("regeneration failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// addRecursive registers root and every non-skipped subdirectory.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skipDirName(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

// runPolling rescans modification times at the poll interval and fires the
// callback after a change followed by a quiet scan.
func (w *Watcher) runPolling(ctx context.Context, fn func(context.Context) error) error {
	last := w.snapshot()
	pending := false

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current := w.snapshot()
			if changed(last, current) {
				last = current
				pending = true
				continue
			}
			if pending {
				pending = false
				if err := fn(ctx); err != nil {
					w.log.Warn("regeneration failed", "error", err)
				}
			}
		}
	}
}

// snapshot maps every relevant file under the roots to its modification
// time.
func (w *Watcher) snapshot() map[string]time.Time {
	out := make(map[string]time.Time)
	for _, root := range w.roots {
		_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if p != root && skipDirName(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !relevant(p) {
				return nil
			}
			if info, err := d.Info(); err == nil {
				out[p] = info.ModTime()
			}
			return nil
		})
	}
	return out
}

func changed(a, b map[string]time.Time) bool {
	if len(a) != len(b) {
		return true
	}
	for p, t := range b {
		if prev, ok := a[p]; !ok || !prev.Equal(t) {
			return true
		}
	}
	return false
}

// relevant reports whether a path should trigger regeneration.
func relevant(path string) bool {
	for _, ext := range relevantExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// skipDirName mirrors the generation walk: hidden, testdata, and vendor
// directories are never watched.
func skipDirName(name string) bool {
	if name == "testdata" || name == "vendor" {
		return true
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

package load

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/specforge/specforge/spec"
)

// DefaultDebounce is the settle window applied to bursts of file events
// before a reload fires.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a project whenever one of its documents changes. Editors
// tend to emit several events per save, so changes are debounced: the
// callback fires once per settle window, with the freshly loaded project or
// the load error.
type Watcher struct {
	dir      string
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce overrides the settle window.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) { w.debounce = d }
}

// NewWatcher watches the project rooted at dir, recursively. Directories
// the loader skips are not watched.
func NewWatcher(dir string, opts ...WatchOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{dir: dir, debounce: DefaultDebounce, fsw: fsw}
	for _, opt := range opts {
		opt(w)
	}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks, invoking fn after each debounced change until the context is
// canceled. fn receives the reloaded project or the reload error; a failed
// reload does not stop the watch.
func (w *Watcher) Run(ctx context.Context, fn func(p *spec.Project, err error)) error {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				// New subdirectories need their own watch.
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = w.fsw.Add(ev.Name)
					continue
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fn(nil, err)
		case <-fire:
			timer = nil
			fire = nil
			fn(Load(w.dir))
		}
	}
}

// relevant reports whether an event names a spec document or a directory
// change worth a rescan.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	base := filepath.Base(ev.Name)
	if kindOf(base) != "" {
		return true
	}
	for _, ext := range Extensions {
		if base == ConfigBase+ext {
			return true
		}
	}
	return ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Remove)
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

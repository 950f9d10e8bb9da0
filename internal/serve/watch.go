package serve

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bernardoamc/bernardoamc.com/temple"
)

// DefaultDebounce is how long the Watcher waits after the last change
// before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc rebuilds the site after its sources changed.
type RebuildFunc func(ctx context.Context) error

// Watcher calls a RebuildFunc whenever files under a directory change.
// Bursts of changes, like an editor saving several files, collapse into one
// rebuild.
type Watcher struct {
	Debounce time.Duration

	dir     string
	ignore  []string
	rebuild RebuildFunc
	fsw     *fsnotify.Watcher
}

// NewWatcher watches dir and every directory beneath it, except the
// ignored directories and their contents. The build output belongs there
// when it lives inside dir, or every rebuild would trigger the next one.
func NewWatcher(dir string, rebuild RebuildFunc, ignore ...string) (*Watcher, error) {
	w := &Watcher{
		Debounce: DefaultDebounce,
		dir:      dir,
		rebuild:  rebuild,
	}
	for _, path := range ignore {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("error resolving %q: %w", path, err)
		}
		w.ignore = append(w.ignore, abs)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	w.fsw = fsw
	if err := w.addTree(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("error watching %q: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.ignore {
		rel, err := filepath.Rel(dir, abs)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}

// Run handles change events until ctx is done, then releases the
// underlying watcher. A failed rebuild is logged and the Watcher keeps
// going, so the next save can fix it.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	log := temple.Logger(ctx).With("dir", w.dir)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if w.ignored(event.Name) {
				continue
			}
			log.DebugContext(ctx, "change detected", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.WarnContext(ctx, "error watching new directory", "path", event.Name, "error", err)
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.WarnContext(ctx, "watcher error", "error", err)

		case <-fire:
			fire = nil
			log.InfoContext(ctx, "rebuilding site")
			if err := w.rebuild(ctx); err != nil {
				log.ErrorContext(ctx, "rebuild failed", "error", err)
			}
		}
	}
}

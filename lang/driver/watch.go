package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

// DefaultDebounce is how long the Watcher waits after the last change
// before it rebuilds.
const DefaultDebounce = 100 * time.Millisecond

// BuildFunc receives the outcome of every build the Watcher runs.
type BuildFunc func(prog *Program, err error)

// Watcher rebuilds a program whenever one of its files changes. The
// Driver it wraps must not share a VisitedSet across calls, otherwise every
// rebuild after the first one would skip all files.
type Watcher struct {
	driver   *Driver
	debounce time.Duration
	log      commonlog.Logger

	files map[string]bool
	dirs  map[string]bool
}

func NewWatcher(d *Driver, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		driver:   d,
		debounce: debounce,
		log:      commonlog.GetLogger("ariel.watch"),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}
}

// Run builds path once, then again after every change to a file of the
// last successful build, until ctx is done.
func (w *Watcher) Run(ctx context.Context, path string, onBuild BuildFunc) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer fw.Close()

	root := Canonical(path)
	w.build(ctx, fw, root, onBuild)

	var rebuild <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debugf("%s changed (%s)", ev.Name, ev.Op)
			rebuild = time.After(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Errorf("watch: %s", err)
		case <-rebuild:
			rebuild = nil
			w.build(ctx, fw, root, onBuild)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return w.files[filepath.Clean(ev.Name)]
}

// build parses root and moves the directory watches over to the files the
// new program consists of before it reports the build. The root and every
// missing import are watched too, so that creating them triggers a rebuild.
func (w *Watcher) build(ctx context.Context, fw *fsnotify.Watcher, root string, onBuild BuildFunc) {
	prog, err := w.driver.Parse(ctx, root)
	if ctx.Err() != nil {
		return
	}

	files := map[string]bool{root: true}
	if prog != nil {
		for _, list := range [][]string{prog.Files, prog.Missing, prog.Aborted} {
			for _, f := range list {
				files[f] = true
			}
		}
	}

	dirs := make(map[string]bool)
	for f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range w.dirs {
		if !dirs[dir] {
			if err := fw.Remove(dir); err != nil {
				w.log.Debugf("unwatch %s: %s", dir, err)
			}
		}
	}
	for dir := range dirs {
		if w.dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			w.log.Errorf("watch %s: %s", dir, err)
			delete(dirs, dir)
		}
	}

	w.files = files
	w.dirs = dirs
	onBuild(prog, err)
}

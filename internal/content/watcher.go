package content

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps a Library current after its initial scan by following
// filesystem notifications for every folder the scan visited. New
// subfolders picked up at runtime are added to the watch set.
type Watcher struct {
	lib      *Library
	fs       *fsnotify.Watcher
	onChange func()
	stop     chan struct{}
}

// Watch starts watching the library's folder tree. onChange runs after the
// index changes; it may be nil. Call Close to stop. The library's initial
// scan must have completed.
func Watch(lib *Library, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{lib: lib, fs: fsw, onChange: onChange, stop: make(chan struct{})}

	lib.mu.RLock()
	dirs := append([]string(nil), lib.dirs...)
	lib.mu.RUnlock()
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			log.Printf("content: watch %s: %v", dir, err)
		}
	}
	go w.run()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.fs.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("content: watcher: %v", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return
	}
	changed := false
	switch {
	case ev.Op.Has(fsnotify.Create):
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.addDir(ev.Name)
			return
		}
		w.lib.add(ev.Name)
		changed = true
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		w.lib.remove(ev.Name)
		changed = true
	}
	if changed && w.onChange != nil {
		w.onChange()
	}
}

// addDir watches a folder created after the initial scan and indexes any
// files already inside it.
func (w *Watcher) addDir(dir string) {
	if err := w.fs.Add(dir); err != nil {
		log.Printf("content: watch %s: %v", dir, err)
		return
	}
	w.lib.mu.Lock()
	w.lib.dirs = append(w.lib.dirs, dir)
	w.lib.mu.Unlock()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() {
			w.lib.add(filepath.Join(dir, e.Name()))
		}
	}
	if w.onChange != nil {
		w.onChange()
	}
}

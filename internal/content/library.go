// Package content maintains the scanned index of playable files: a sorted
// label→path mapping built by a background walk of one folder tree.
package content

import (
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// MovieExtensions are the file suffixes indexed from the movie folder.
var MovieExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv"}

// LayoutExtensions are the file suffixes indexed from the layout folder.
var LayoutExtensions = []string{".json"}

// Library indexes one folder tree. The scan runs on its own goroutine;
// queries are safe at any time and return the snapshot indexed so far, which
// is empty until the scan makes progress. Done signals completion.
type Library struct {
	folder string
	exts   map[string]bool

	mu    sync.RWMutex
	files map[string]string // label -> absolute path
	dirs  []string          // every directory seen, for the watcher

	done     chan struct{}
	doneOnce sync.Once
}

// NewLibrary creates an index over folder for the given extensions (each
// including the leading period).
func NewLibrary(folder string, exts []string) *Library {
	m := make(map[string]bool, len(exts))
	for _, e := range exts {
		m[strings.ToLower(e)] = true
	}
	return &Library{
		folder: folder,
		exts:   m,
		files:  map[string]string{},
		done:   make(chan struct{}),
	}
}

// Folder returns the root folder this library indexes.
func (l *Library) Folder() string { return l.folder }

// Scan walks the folder recursively, indexing matching files. Dot-prefixed
// names are skipped. progress, when non-nil, is called as each directory is
// entered. Scan closes Done when it returns; run it on a worker goroutine.
func (l *Library) Scan(progress func(folder string)) {
	defer l.doneOnce.Do(func() { close(l.done) })
	err := filepath.WalkDir(l.folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("content: scan %s: %v", path, err)
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != l.folder {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			l.mu.Lock()
			l.dirs = append(l.dirs, path)
			l.mu.Unlock()
			if progress != nil {
				progress(path)
			}
			return nil
		}
		l.add(path)
		return nil
	})
	if err != nil {
		log.Printf("content: scan %s: %v", l.folder, err)
	}
}

// Done is closed once the initial scan completes.
func (l *Library) Done() <-chan struct{} { return l.done }

// add indexes one file if its extension matches.
func (l *Library) add(path string) {
	if !l.exts[strings.ToLower(filepath.Ext(path))] {
		return
	}
	label, ok := l.LabelFor(path)
	if !ok {
		return
	}
	l.mu.Lock()
	l.files[label] = path
	l.mu.Unlock()
}

// remove drops one file from the index.
func (l *Library) remove(path string) {
	label, ok := l.LabelFor(path)
	if !ok {
		return
	}
	l.mu.Lock()
	delete(l.files, label)
	l.mu.Unlock()
}

// Labels returns the indexed labels sorted by (folder, filename).
func (l *Library) Labels() []string {
	l.mu.RLock()
	labels := make([]string, 0, len(l.files))
	for label := range l.files {
		labels = append(labels, label)
	}
	l.mu.RUnlock()
	SortLabels(labels)
	return labels
}

// Resolve returns the full path for a label.
func (l *Library) Resolve(label string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	path, ok := l.files[label]
	return path, ok
}

// LabelFor derives the label for a path under the library folder:
// the relative folder joined with the file stem. Paths outside the folder
// have no label.
func (l *Library) LabelFor(path string) (string, bool) {
	rel, err := filepath.Rel(l.folder, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))
	return stem, true
}

// SortLabels orders labels by (folder, filename), case-sensitive.
func SortLabels(labels []string) {
	sort.Slice(labels, func(i, j int) bool {
		fi, ni := splitLabel(labels[i])
		fj, nj := splitLabel(labels[j])
		if fi != fj {
			return fi < fj
		}
		return ni < nj
	})
}

// splitLabel separates a label into its folder part and file part.
func splitLabel(label string) (folder, name string) {
	if i := strings.LastIndex(label, "/"); i >= 0 {
		return label[:i], label[i+1:]
	}
	return "", label
}

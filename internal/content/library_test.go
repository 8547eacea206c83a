package content

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func scannedLibrary(t *testing.T, files ...string) (*Library, string) {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		writeFile(t, filepath.Join(dir, filepath.FromSlash(f)))
	}
	lib := NewLibrary(dir, MovieExtensions)
	go lib.Scan(nil)
	<-lib.Done()
	return lib, dir
}

func TestScanIndexesMatchingFiles(t *testing.T) {
	lib, dir := scannedLibrary(t,
		"clip.mp4",
		"sub/other.mkv",
		"notes.txt",
		".hidden/secret.mp4",
		".stray.mp4",
	)
	want := []string{"clip", "sub/other"}
	if got := lib.Labels(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Labels() = %v, want %v", got, want)
	}
	path, ok := lib.Resolve("sub/other")
	if !ok || path != filepath.Join(dir, "sub", "other.mkv") {
		t.Fatalf("Resolve = %q, %v", path, ok)
	}
	if _, ok := lib.Resolve("notes"); ok {
		t.Fatal("non-movie file was indexed")
	}
}

func TestLabelFor(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary(dir, MovieExtensions)

	label, ok := lib.LabelFor(filepath.Join(dir, "a", "b", "clip.mp4"))
	if !ok || label != "a/b/clip" {
		t.Fatalf("label = %q, %v", label, ok)
	}
	label, ok = lib.LabelFor(filepath.Join(dir, "top.mp4"))
	if !ok || label != "top" {
		t.Fatalf("label = %q, %v", label, ok)
	}
	if _, ok := lib.LabelFor(filepath.Join(dir, "..", "outside.mp4")); ok {
		t.Fatal("path outside the folder got a label")
	}
}

func TestSortLabelsByFolderThenName(t *testing.T) {
	labels := []string{"b/1", "a/2", "zz", "a/1", "aa"}
	SortLabels(labels)
	want := []string{"aa", "zz", "a/1", "a/2", "b/1"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("sorted = %v, want %v", labels, want)
	}
}

func TestScanProgressReportsFolders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "clip.mp4"))
	lib := NewLibrary(dir, MovieExtensions)

	var seen []string
	lib.Scan(func(folder string) { seen = append(seen, folder) })
	if len(seen) != 2 {
		t.Fatalf("progress folders = %v, want root and sub", seen)
	}
}

func TestScanMissingFolder(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "nope"), MovieExtensions)
	go lib.Scan(nil)
	<-lib.Done()
	if got := lib.Labels(); len(got) != 0 {
		t.Fatalf("Labels() = %v, want empty", got)
	}
}

package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestWalkShallowOnlyTopLevel(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt.txtpp"))
	touch(t, filepath.Join(dir, "b.txt"))
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(sub, "c.txt.txtpp"))

	got, err := Walk([]string{dir}, ".txtpp", false)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %v, want exactly the top-level .txtpp file", got)
	}
	want, _ := filepath.Abs(filepath.Join(dir, "a.txt.txtpp"))
	if got[0] != want {
		t.Errorf("got %q, want %q", got[0], want)
	}
}

func TestWalkRecursiveDescendsSubdirs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.txt.txtpp"))
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(sub, "c.txt.txtpp"))
	touch(t, filepath.Join(sub, "ignored.txt"))

	got, err := Walk([]string{dir}, ".txtpp", true)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want the top-level and the nested .txtpp file", got)
	}
}

func TestWalkFileRootPassthroughIgnoresSuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "odd-name.dat")
	touch(t, path)

	got, err := Walk([]string{path}, ".txtpp", false)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %v, want the explicit file root regardless of suffix", got)
	}
	want, _ := filepath.Abs(path)
	if got[0] != want {
		t.Errorf("got %q, want %q", got[0], want)
	}
}

func TestWalkDeduplicatesAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.txt.txtpp"))
	touch(t, filepath.Join(dir, "a.txt.txtpp"))

	direct := filepath.Join(dir, "a.txt.txtpp")
	got, err := Walk([]string{dir, direct}, ".txtpp", false)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want the directory scan and the direct root deduplicated to 2 entries", got)
	}
	if got[0] > got[1] {
		t.Errorf("results not sorted: %v", got)
	}
}

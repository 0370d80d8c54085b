package scan

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"testing"
)

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestFilesSkipsVCSOnly(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt", "root file")
	write(t, root, "dir1/b.TXT", "child file")
	write(t, root, ".git/config", "ignored vcs")
	write(t, root, "node_modules/x/package.json", "{}")

	var got []string
	exts := map[string]string{}
	err := Files(root, func(f FileVisit) error {
		got = append(got, f.Path)
		exts[f.Path] = f.Ext
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	sort.Strings(got)
	want := []string{"a.txt", "dir1/b.TXT", "node_modules/x/package.json"}
	if !slices.Equal(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
	if exts["dir1/b.TXT"] != ".txt" {
		t.Fatalf("ext not lowercased: %q", exts["dir1/b.TXT"])
	}
}

func TestWalkReportsDirs(t *testing.T) {
	root := t.TempDir()
	write(t, root, "d/e/f.txt", "deep")

	var dirs []string
	err := Walk(root, func(f FileVisit) error {
		if f.IsDir {
			dirs = append(dirs, f.Path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if !slices.Equal(dirs, []string{"d", "d/e"}) {
		t.Fatalf("dirs=%v", dirs)
	}
}

func TestWalkStopsOnCallbackError(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt", "a")
	write(t, root, "b.txt", "b")
	stop := errors.New("stop")
	n := 0
	err := Files(root, func(f FileVisit) error {
		n++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("err=%v", err)
	}
	if n != 1 {
		t.Fatalf("callback ran %d times", n)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	err := Walk(filepath.Join(t.TempDir(), "nope"), func(FileVisit) error { return nil })
	if err == nil {
		t.Fatalf("expected error for missing root")
	}
}

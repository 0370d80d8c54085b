package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FileVisit carries per-entry metadata to user callbacks.
type FileVisit struct {
	// Root-relative path using forward slashes (e.g., "src/app.py").
	Path string
	// Absolute filesystem path.
	AbsPath string
	// Base name of the entry.
	Name string
	// True when the entry is a directory.
	IsDir bool
	// Lowercased extension (e.g., ".py"); empty for dirs or no-ext files.
	Ext string
}

// VisitFunc is invoked for every visited entry. Returning an error aborts
// the walk.
type VisitFunc func(f FileVisit) error

var vcsDirs = map[string]bool{".git": true, ".hg": true, ".svn": true}

// Walk visits every entry under root, skipping VCS metadata directories.
// Dependency directories (node_modules, vendor) are walked like any other.
func Walk(root string, cb VisitFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.IsDir() && vcsDirs[d.Name()] {
			return filepath.SkipDir
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)
		ext := ""
		if !d.IsDir() {
			ext = strings.ToLower(filepath.Ext(d.Name()))
		}
		return cb(FileVisit{Path: rel, AbsPath: path, Name: d.Name(), IsDir: d.IsDir(), Ext: ext})
	})
}

// Files is Walk restricted to regular files.
func Files(root string, cb VisitFunc) error {
	return Walk(root, func(f FileVisit) error {
		if f.IsDir {
			return nil
		}
		return cb(f)
	})
}

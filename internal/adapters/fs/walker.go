// Package fs provides file system adapters for discovering, checking and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
)

var _ ports.SourceDiscoverer = (*Walker)(nil)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Discover yields every source file below root in lexical depth-first order.
// Symlinks to regular files are yielded with the target's modification time,
// and a symlinked root is walked through its target. Symlinked directories
// are not entered. Errors on individual entries are swallowed so one
// unreadable directory does not hide its siblings. A missing root yields
// nothing.
func (w *Walker) Discover(root string, exclude []string) iter.Seq[domain.SourceFile] {
	return func(yield func(domain.SourceFile) bool) {
		for path, info := range w.walk(root, exclude) {
			if !strings.EqualFold(filepath.Ext(path), domain.SourceExt) {
				continue
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				continue
			}

			if !yield(domain.SourceFile{Path: path, RelPath: rel, ModTime: info.ModTime()}) {
				return
			}
		}
	}
}

// WalkFiles yields the path of every regular file below root that is not excluded.
func (w *Walker) WalkFiles(root string, exclude []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range w.walk(root, exclude) {
			if !yield(path) {
				return
			}
		}
	}
}

// walk yields regular files, and symlinks resolving to regular files, below
// root. Paths are reported under root even when root itself is a symlink.
func (w *Walker) walk(root string, exclude []string) iter.Seq2[string, fs.FileInfo] {
	return func(yield func(string, fs.FileInfo) bool) {
		walkRoot := root
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			walkRoot = resolved
		}

		_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == walkRoot {
					return err
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if path != walkRoot {
				if skip, action := w.shouldSkip(d, exclude); skip {
					return action
				}
			}

			info, ok := fileInfo(path, d)
			if !ok {
				return nil
			}

			if walkRoot != root {
				rel, err := filepath.Rel(walkRoot, path)
				if err != nil {
					return nil
				}
				path = filepath.Join(root, rel)
			}

			if !yield(path, info) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// fileInfo returns the info of a regular file entry, following symlinks.
func fileInfo(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	switch {
	case d.Type().IsRegular():
		info, err := d.Info()
		return info, err == nil
	case d.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		return info, true
	default:
		return nil, false
	}
}

// shouldSkip checks an entry against the built-in and configured exclusions.
// For directories the returned action is filepath.SkipDir.
func (w *Walker) shouldSkip(d fs.DirEntry, exclude []string) (bool, error) {
	name := d.Name()

	if d.IsDir() {
		switch name {
		case ".git", ".jj", "__pycache__":
			return true, filepath.SkipDir
		}
	}

	for _, pattern := range exclude {
		if matched, _ := filepath.Match(pattern, name); !matched {
			continue
		}
		if d.IsDir() {
			return true, filepath.SkipDir
		}
		return true, nil
	}

	return false, nil
}

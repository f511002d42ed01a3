package domain

import (
	"path"
	"path/filepath"
	"strings"
)

// ArtifactRelPath rewrites the extension of a source-relative path.
// The directory structure is preserved.
func ArtifactRelPath(rel, ext string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
}

// RemotePath normalizes a root-relative path for the device filesystem.
// Backslashes are converted regardless of the host OS and leading separators
// are removed, so "a\\b\\c.mpy" and "/a/b/c.mpy" both become "a/b/c.mpy".
func RemotePath(rel string) string {
	p := strings.ReplaceAll(rel, `\`, "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// RemoteParents returns every parent directory prefix of a remote path in
// root-to-leaf order. "a/b/c.mpy" yields ["a", "a/b"]; "c.mpy" yields nothing.
func RemoteParents(remote string) []string {
	dir := path.Dir(RemotePath(remote))
	if dir == "." || dir == "" {
		return nil
	}

	segments := strings.Split(dir, "/")
	parents := make([]string, 0, len(segments))
	for i := range segments {
		parents = append(parents, strings.Join(segments[:i+1], "/"))
	}
	return parents
}

// ModuleName returns the importable module name for a root-relative source path.
// "lib/helper.py" becomes "lib.helper".
func ModuleName(rel string) string {
	p := strings.TrimSuffix(RemotePath(rel), path.Ext(rel))
	return strings.ReplaceAll(p, "/", ".")
}

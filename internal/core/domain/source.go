package domain

import (
	"path"
	"time"
)

// SourceFile identifies one compilable unit found by discovery.
type SourceFile struct {
	// Path is the absolute path of the file.
	Path string
	// RelPath is the path relative to the source root, in host separators.
	RelPath string
	// ModTime is the last modification time observed during discovery.
	ModTime time.Time
}

// Name returns the base name of the source file.
func (s SourceFile) Name() string {
	return path.Base(RemotePath(s.RelPath))
}

// ArtifactRef identifies the expected compiled output for a SourceFile.
// It is always derived from a SourceFile and never constructed on its own.
type ArtifactRef struct {
	Path    string
	RelPath string
	Exists  bool
	ModTime time.Time
}

// RemotePath returns the forward-slash destination of the artifact on the device.
func (a ArtifactRef) RemotePath() string {
	return RemotePath(a.RelPath)
}

// Disposition is the staleness verdict for a BuildTask.
type Disposition uint8

const (
	// DispositionStale means the artifact is missing or older than its source.
	DispositionStale Disposition = iota
	// DispositionUpToDate means the artifact can be reused.
	DispositionUpToDate
)

// String returns the string representation of the Disposition.
func (d Disposition) String() string {
	if d == DispositionUpToDate {
		return "up-to-date"
	}
	return "stale"
}

// BuildTask pairs a source with its artifact and the staleness verdict.
type BuildTask struct {
	Source      SourceFile
	Artifact    ArtifactRef
	Disposition Disposition
	// Verbatim marks tasks whose source is copied instead of compiled.
	Verbatim bool
}

// Stale reports whether the task needs to be (re)compiled.
func (t BuildTask) Stale() bool {
	return t.Disposition == DispositionStale
}

package domain

import (
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
)

// Bump selects which semantic version component an archive increments.
type Bump string

const (
	// BumpPatch increments the patch component.
	BumpPatch Bump = "patch"
	// BumpMinor increments the minor component and resets patch.
	BumpMinor Bump = "minor"
	// BumpMajor increments the major component and resets minor and patch.
	BumpMajor Bump = "major"
)

// ParseBump validates a bump kind. Empty means patch.
func ParseBump(s string) (Bump, error) {
	switch Bump(s) {
	case "", BumpPatch:
		return BumpPatch, nil
	case BumpMinor, BumpMajor:
		return Bump(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidBump, "failed to parse version bump"), "value", s)
	}
}

// ManifestEntry describes one artifact inside an archive.
type ManifestEntry struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
	Hash string `json:"xxhash64"`
}

// Manifest is written next to the artifacts in every archive.
type Manifest struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	OptLevel  string    `json:"opt_level"`
	CreatedAt time.Time `json:"created_at"`
	// Digest folds every entry into one checksum.
	Digest string          `json:"digest"`
	Files  []ManifestEntry `json:"files"`
}

// ArchiveResult is the outcome of writing an archive.
type ArchiveResult struct {
	Path     string
	Version  string
	Manifest Manifest
	// Location is the uploaded object URL, empty when not uploaded.
	Location string
}

// ArchiveFileName returns the file name of an archive version, e.g. "firmware-v1.2.3.zip".
func ArchiveFileName(name, version string) string {
	return name + "-" + version + ".zip"
}

// FileName returns the archive file name without directory.
func (r ArchiveResult) FileName() string {
	return filepath.Base(r.Path)
}

package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
)

var _ ports.StalenessOracle = (*Oracle)(nil)

// Oracle compares source and artifact modification times.
type Oracle struct{}

// NewOracle creates a new Oracle.
func NewOracle() *Oracle {
	return &Oracle{}
}

// Resolve derives the artifact of src below artifactRoot and records whether
// it exists together with its modification time.
func (o *Oracle) Resolve(src domain.SourceFile, artifactRoot, ext string) domain.ArtifactRef {
	rel := domain.ArtifactRelPath(src.RelPath, ext)
	ref := domain.ArtifactRef{
		Path:    filepath.Join(artifactRoot, rel),
		RelPath: rel,
	}

	info, err := os.Stat(ref.Path)
	if err != nil || info.IsDir() {
		return ref
	}

	ref.Exists = true
	ref.ModTime = info.ModTime()
	return ref
}

// IsStale reports whether the artifact must be rebuilt. A missing artifact is
// stale. Otherwise the source must be strictly newer; equal timestamps count
// as up to date.
func (o *Oracle) IsStale(src domain.SourceFile, artifact domain.ArtifactRef) bool {
	if !artifact.Exists {
		return true
	}
	return src.ModTime.After(artifact.ModTime)
}

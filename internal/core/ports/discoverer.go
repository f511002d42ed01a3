package ports

import (
	"iter"

	"go.trai.ch/mpy/internal/core/domain"
)

//go:generate mockgen -source=discoverer.go -destination=mocks/mock_discoverer.go -package=mocks

// SourceDiscoverer enumerates source files below a root.
type SourceDiscoverer interface {
	// Discover yields every source file below root in a stable depth-first
	// order. Names matching an exclude pattern are skipped, directories
	// included. A missing root yields nothing.
	Discover(root string, exclude []string) iter.Seq[domain.SourceFile]
}

// StalenessOracle decides whether a source needs to be rebuilt.
type StalenessOracle interface {
	// Resolve derives the artifact for a source and stats it.
	Resolve(src domain.SourceFile, artifactRoot, ext string) domain.ArtifactRef
	// IsStale reports whether the artifact is missing or older than the source.
	IsStale(src domain.SourceFile, artifact domain.ArtifactRef) bool
}

package ports

import (
	"context"

	"go.trai.ch/mpy/internal/core/domain"
)

//go:generate mockgen -source=archiver.go -destination=mocks/mock_archiver.go -package=mocks

// Archiver packs the artifact root into a versioned archive.
type Archiver interface {
	// Archive writes the next version of the archive for cfg and returns it.
	Archive(ctx context.Context, cfg *domain.Config, bump domain.Bump) (domain.ArchiveResult, error)
}

// Uploader publishes an archive to remote storage.
type Uploader interface {
	// Upload stores the file at path and returns its location.
	Upload(ctx context.Context, cfg domain.S3Config, path string) (string, error)
}

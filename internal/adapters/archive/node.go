package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mpy/internal/adapters/fs"
	"go.trai.ch/mpy/internal/core/ports"
)

const (
	// ArchiverNodeID is the unique identifier for the archiver Graft node.
	ArchiverNodeID graft.ID = "adapter.archive"
	// UploaderNodeID is the unique identifier for the S3 uploader Graft node.
	UploaderNodeID graft.ID = "adapter.archive.s3"
)

func init() {
	graft.Register(graft.Node[ports.Archiver]{
		ID:        ArchiverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.Archiver, error) {
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewArchiver(hasher), nil
		},
	})

	graft.Register(graft.Node[ports.Uploader]{
		ID:        UploaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Uploader, error) {
			return NewS3Uploader(), nil
		},
	})
}

// Package archive packs the artifact root into versioned zip archives and
// publishes them to S3 compatible storage.
package archive

import (
	"archive/zip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/mpy/internal/adapters/fs"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Archiver = (*Archiver)(nil)

// Archiver implements ports.Archiver.
type Archiver struct {
	hasher *fs.Hasher
	now    func() time.Time
}

// NewArchiver creates a new Archiver.
func NewArchiver(hasher *fs.Hasher) *Archiver {
	return &Archiver{hasher: hasher, now: time.Now}
}

// Archive zips every file below the artifact root together with a manifest.
// The archive is named after the next version following the highest archive in
// the archive directory.
func (a *Archiver) Archive(ctx context.Context, cfg *domain.Config, bump domain.Bump) (domain.ArchiveResult, error) {
	entries, err := a.hasher.HashTree(cfg.ArtifactRoot, nil)
	if err != nil {
		return domain.ArchiveResult{}, zerr.Wrap(err, domain.ErrArchiveFailed.Error())
	}
	if len(entries) == 0 {
		return domain.ArchiveResult{}, zerr.With(zerr.Wrap(domain.ErrArchiveEmpty, "nothing to archive"), "path", cfg.ArtifactRoot)
	}

	latest, err := LatestVersion(cfg.Archive.Dir, cfg.Archive.Name)
	if err != nil {
		return domain.ArchiveResult{}, zerr.Wrap(err, domain.ErrArchiveFailed.Error())
	}
	version, err := NextVersion(latest, bump)
	if err != nil {
		return domain.ArchiveResult{}, err
	}

	manifest := domain.Manifest{
		Name:      cfg.Archive.Name,
		Version:   version,
		OptLevel:  cfg.OptLevel.String(),
		CreatedAt: a.now().UTC(),
		Digest:    a.hasher.CombineHashes(entries),
		Files:     entries,
	}

	if err := os.MkdirAll(cfg.Archive.Dir, domain.DirPerm); err != nil {
		return domain.ArchiveResult{}, zerr.With(zerr.Wrap(domain.ErrArchiveFailed, err.Error()), "path", cfg.Archive.Dir)
	}

	path := filepath.Join(cfg.Archive.Dir, domain.ArchiveFileName(cfg.Archive.Name, version))
	if err := a.write(ctx, path, cfg.ArtifactRoot, manifest); err != nil {
		return domain.ArchiveResult{}, zerr.With(zerr.Wrap(domain.ErrArchiveFailed, err.Error()), "path", path)
	}

	return domain.ArchiveResult{Path: path, Version: version, Manifest: manifest}, nil
}

// write creates the zip next to path and renames it into place once complete.
func (a *Archiver) write(ctx context.Context, path, root string, manifest domain.Manifest) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".archive-*.zip")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	zw := zip.NewWriter(tmp)
	for _, entry := range manifest.Files {
		if err := ctx.Err(); err != nil {
			_ = tmp.Close()
			return err
		}
		if err := addFile(zw, filepath.Join(root, filepath.FromSlash(entry.Path)), entry.Path); err != nil {
			_ = tmp.Close()
			return err
		}
	}

	w, err := zw.Create(domain.ManifestFileName)
	if err != nil {
		_ = tmp.Close()
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func addFile(zw *zip.Writer, src, name string) error {
	f, err := os.Open(src) //nolint:gosec // path comes from the artifact walk
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}

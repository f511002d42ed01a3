package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hasher computes content checksums of artifacts.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// HashTree returns one manifest entry per file below root, in walk order.
// Paths in the entries are relative to root and use forward slashes.
func (h *Hasher) HashTree(root string, exclude []string) ([]domain.ManifestEntry, error) {
	var entries []domain.ManifestEntry
	for path := range h.walker.WalkFiles(root, exclude) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
		}

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return nil, err
		}

		entries = append(entries, domain.ManifestEntry{
			Path: domain.RemotePath(rel),
			Size: info.Size(),
			Hash: fmt.Sprintf("%016x", sum),
		})
	}
	return entries, nil
}

// CombineHashes folds a set of manifest entries into a single digest.
// The order of entries is significant.
func (h *Hasher) CombineHashes(entries []domain.ManifestEntry) string {
	hasher := xxhash.New()
	for _, e := range entries {
		_, _ = hasher.WriteString(e.Path)
		_, _ = hasher.Write([]byte{0})
		_ = binary.Write(hasher, binary.LittleEndian, e.Size)
		_, _ = hasher.WriteString(e.Hash)
		_, _ = hasher.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}

package archive_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mpy/internal/adapters/archive"
	"go.trai.ch/mpy/internal/core/domain"
)

func TestNextVersion(t *testing.T) {
	tests := []struct {
		current string
		bump    domain.Bump
		want    string
	}{
		{current: "v0.0.0", bump: domain.BumpPatch, want: "v0.0.1"},
		{current: "v0.0.0", bump: domain.BumpMinor, want: "v0.1.0"},
		{current: "v0.0.0", bump: domain.BumpMajor, want: "v1.0.0"},
		{current: "v1.4.9", bump: domain.BumpPatch, want: "v1.4.10"},
		{current: "v1.4.9", bump: domain.BumpMinor, want: "v1.5.0"},
		{current: "v1.4.9", bump: domain.BumpMajor, want: "v2.0.0"},
		{current: "v2", bump: "", want: "v2.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.current+"/"+string(tt.bump), func(t *testing.T) {
			got, err := archive.NextVersion(tt.current, tt.bump)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextVersion_Invalid(t *testing.T) {
	_, err := archive.NextVersion("1.2.3", domain.BumpPatch)
	require.ErrorIs(t, err, domain.ErrArchiveFailed)

	_, err = archive.NextVersion("v1.2.3", domain.Bump("huge"))
	require.ErrorIs(t, err, domain.ErrInvalidBump)
}

func TestLatestVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"firmware-v0.1.0.zip",
		"firmware-v0.10.0.zip",
		"firmware-v0.9.3.zip",
		"firmware-v1.0.0-rc.1.zip",
		"firmware-latest.zip",
		"other-v9.0.0.zip",
		"firmware-v2.0.0.tar",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, domain.FilePerm))
	}

	got, err := archive.LatestVersion(dir, "firmware")
	require.NoError(t, err)
	assert.Equal(t, "v0.10.0", got)
}

func TestLatestVersion_MissingDir(t *testing.T) {
	got, err := archive.LatestVersion(filepath.Join(t.TempDir(), "dist"), "firmware")
	require.NoError(t, err)
	assert.Equal(t, "v0.0.0", got)
}

package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	env := resolveEnvironment(
		[]string{"PATH=/usr/bin", "HOME=/root", "MALFORMED"},
		map[string]string{"HOME": "/tmp/home", "MPY_TARGET": "auto"},
	)

	assert.Equal(t, []string{"HOME=/tmp/home", "MPY_TARGET=auto", "PATH=/usr/bin"}, env)
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "mpy-cross")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700)) //nolint:gosec // test executable

	got, err := lookPath("mpy-cross", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = lookPath("mpremote", []string{"PATH=" + dir})
	require.Error(t, err)

	_, err = lookPath("mpy-cross", nil)
	require.Error(t, err)
}

func TestFindExecutable_NotExecutable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	require.ErrorIs(t, findExecutable(file), os.ErrPermission)
}

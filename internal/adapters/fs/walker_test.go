package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mpy/internal/adapters/fs"
	"go.trai.ch/mpy/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_Discover(t *testing.T) {
	// root/
	//   main.py
	//   boot.py           (excluded)
	//   README.md
	//   lib/
	//     helper.py
	//     sensors/
	//       temp.py
	//   vendor/           (excluded)
	//     skip.py
	//   __pycache__/
	//     cached.py
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.py"), "import lib.helper")
	writeFile(t, filepath.Join(root, "boot.py"), "")
	writeFile(t, filepath.Join(root, "README.md"), "# readme")
	writeFile(t, filepath.Join(root, "lib", "helper.py"), "")
	writeFile(t, filepath.Join(root, "lib", "sensors", "temp.py"), "")
	writeFile(t, filepath.Join(root, "vendor", "skip.py"), "")
	writeFile(t, filepath.Join(root, "__pycache__", "cached.py"), "")

	walker := fs.NewWalker()

	var rels []string
	for src := range walker.Discover(root, []string{"boot.py", "vendor"}) {
		assert.True(t, filepath.IsAbs(src.Path))
		assert.False(t, src.ModTime.IsZero())
		rels = append(rels, src.RelPath)
	}

	assert.Equal(t, []string{
		filepath.Join("lib", "helper.py"),
		filepath.Join("lib", "sensors", "temp.py"),
		"main.py",
	}, rels)
}

func TestWalker_Discover_StableOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"c.py", "a.py", filepath.Join("b", "x.py"), "d.py"} {
		writeFile(t, filepath.Join(root, name), "")
	}

	walker := fs.NewWalker()
	first := slices.Collect(walker.Discover(root, nil))
	second := slices.Collect(walker.Discover(root, nil))

	assert.Equal(t, first, second)
	require.Len(t, first, 4)
	assert.Equal(t, "a.py", first[0].RelPath)
}

func TestWalker_Discover_MissingRoot(t *testing.T) {
	walker := fs.NewWalker()

	files := slices.Collect(walker.Discover(filepath.Join(t.TempDir(), "missing"), nil))

	assert.Empty(t, files)
}

func TestWalker_Discover_EarlyStop(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "")
	writeFile(t, filepath.Join(root, "b.py"), "")

	walker := fs.NewWalker()
	count := 0
	for range walker.Discover(root, nil) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.mpy"), "")
	writeFile(t, filepath.Join(root, "lib", "helper.mpy"), "")
	writeFile(t, filepath.Join(root, ".git", "config"), "")

	walker := fs.NewWalker()
	files := slices.Collect(walker.WalkFiles(root, nil))

	assert.Equal(t, []string{
		filepath.Join(root, "lib", "helper.mpy"),
		filepath.Join(root, "main.mpy"),
	}, files)
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o750))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

func TestWalker_Discover_SymlinkedFiles(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()
	writeFile(t, filepath.Join(root, "main.py"), "import util")
	writeFile(t, filepath.Join(shared, "util.py"), "def f(): pass")
	symlink(t, filepath.Join(shared, "util.py"), filepath.Join(root, "util.py"))
	symlink(t, filepath.Join(shared, "missing.py"), filepath.Join(root, "dangling.py"))

	target, err := os.Stat(filepath.Join(shared, "util.py"))
	require.NoError(t, err)

	found := map[string]domain.SourceFile{}
	for src := range fs.NewWalker().Discover(root, nil) {
		found[src.RelPath] = src
	}

	require.Len(t, found, 2)
	assert.Equal(t, filepath.Join(root, "util.py"), found["util.py"].Path)
	assert.True(t, target.ModTime().Equal(found["util.py"].ModTime))
	assert.Contains(t, found, "main.py")
}

func TestWalker_Discover_SymlinkedRoot(t *testing.T) {
	actual := t.TempDir()
	writeFile(t, filepath.Join(actual, "main.py"), "")
	writeFile(t, filepath.Join(actual, "lib", "helper.py"), "")
	root := filepath.Join(t.TempDir(), "PY")
	symlink(t, actual, root)

	var paths []string
	for src := range fs.NewWalker().Discover(root, nil) {
		paths = append(paths, src.Path)
	}

	assert.Equal(t, []string{
		filepath.Join(root, "lib", "helper.py"),
		filepath.Join(root, "main.py"),
	}, paths)
}

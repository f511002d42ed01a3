package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mpy/internal/adapters/shell"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	executor := shell.NewExecutor()

	cmd := domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1; echo line2"},
		Dir:  t.TempDir(),
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), cmd, &stdout, io.Discard)
	require.NoError(t, err)

	output := stdout.String()
	require.Contains(t, output, "line1")
	require.Contains(t, output, "line2")
}

func TestExecutor_Execute_SeparateStreams(t *testing.T) {
	executor := shell.NewExecutor()

	cmd := domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err >&2"},
	}

	var stdout, stderr bytes.Buffer
	err := executor.Execute(context.Background(), cmd, &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecutor_Execute_EnvironmentVariables(t *testing.T) {
	executor := shell.NewExecutor()

	cmd := domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo $MY_TEST_VAR"},
		Env:  map[string]string{"MY_TEST_VAR": "test-value-123"},
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), cmd, &stdout, io.Discard)
	require.NoError(t, err)

	require.Contains(t, stdout.String(), "test-value-123")
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	executor := shell.NewExecutor()
	dir := t.TempDir()

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), domain.Command{Name: "pwd", Dir: dir}, &stdout, io.Discard)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	executor := shell.NewExecutor()

	err := executor.Execute(context.Background(), domain.Command{Name: "nonexistent-command-xyz123"}, io.Discard, io.Discard)

	require.ErrorIs(t, err, domain.ErrToolNotFound)
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	executor := shell.NewExecutor()

	cmd := domain.Command{Name: "sh", Args: []string{"-c", "exit 42"}}

	err := executor.Execute(context.Background(), cmd, io.Discard, io.Discard)
	require.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.Contains(t, err.Error(), "exit status 42")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 42, zErr.Metadata()["exit_code"])
	assert.Equal(t, "sh", zErr.Metadata()["tool"])
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := shell.NewExecutor()

	err := executor.Execute(context.Background(), domain.Command{}, io.Discard, io.Discard)

	require.NoError(t, err)
}

func TestExecutor_Execute_AbsolutePath(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	executor := shell.NewExecutor()

	cmd := domain.Command{Name: "/bin/sh", Args: []string{"-c", "echo test"}}

	err := executor.Execute(context.Background(), cmd, io.Discard, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_Canceled(t *testing.T) {
	executor := shell.NewExecutor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executor.Execute(ctx, domain.Command{Name: "sh", Args: []string{"-c", "sleep 5"}}, io.Discard, io.Discard)

	require.Error(t, err)
}

func TestLineWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		mockLogger.EXPECT().Info("mpremote 1.24.1"),
		mockLogger.EXPECT().Info("partial"),
	)

	w := shell.NewLineWriter(mockLogger, false)
	_, _ = w.Write([]byte("mpremote 1.24"))
	_, _ = w.Write([]byte(".1\r\n\n"))
	_, _ = w.Write([]byte("partial"))
	require.NoError(t, w.Close())
}

func TestLineWriter_Warn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("careful")

	w := shell.NewLineWriter(mockLogger, true)
	_, _ = w.Write([]byte("careful\n"))
	require.NoError(t, w.Close())
}

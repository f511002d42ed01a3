// Package mpycross drives the MicroPython cross-compiler.
package mpycross

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler by invoking the cross-compiler through an Executor.
type Compiler struct {
	executor ports.Executor
}

// NewCompiler creates a new Compiler.
func NewCompiler(executor ports.Executor) *Compiler {
	return &Compiler{executor: executor}
}

// Compile creates the artifact directory and produces the artifact for task.
// Verbatim tasks, and every task when opts.Level is domain.OptNone, are copied.
func (c *Compiler) Compile(
	ctx context.Context,
	task domain.BuildTask,
	opts domain.CompileOptions,
) domain.CompilationResult {
	result := domain.CompilationResult{Task: task, Status: domain.CompileSucceeded}

	dir := filepath.Dir(task.Artifact.Path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return fail(result, err.Error(),
			zerr.With(zerr.Wrap(domain.ErrArtifactDirCreateFailed, err.Error()), "path", dir))
	}

	if task.Verbatim || !opts.Level.Compiles() {
		if err := copyFile(task.Source.Path, task.Artifact.Path); err != nil {
			return fail(result, err.Error(),
				zerr.With(zerr.Wrap(domain.ErrCopyFailed, err.Error()), "file", task.Source.RelPath))
		}
		return result
	}

	var output bytes.Buffer
	cmd := domain.Command{
		Name: opts.Tool,
		Args: []string{opts.Level.Flag(), task.Source.Path, "-o", task.Artifact.Path},
	}
	if err := c.executor.Execute(ctx, cmd, &output, &output); err != nil {
		diagnostics := strings.TrimSpace(output.String())
		if diagnostics == "" {
			diagnostics = err.Error()
		}
		return fail(result, diagnostics,
			zerr.With(zerr.Wrap(domain.ErrCompileFailed, task.Source.RelPath), "tool", opts.Tool))
	}

	return result
}

func fail(result domain.CompilationResult, diagnostics string, err error) domain.CompilationResult {
	result.Status = domain.CompileFailed
	result.Diagnostics = diagnostics
	result.Err = err
	return result
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // path comes from discovery
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm) //nolint:gosec // artifact root
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

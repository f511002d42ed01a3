// Package shell provides the executor adapter for external tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs the command with the process environment overlaid by cmd.Env.
// A command that cannot be spawned returns domain.ErrToolNotFound. A non-zero
// exit returns domain.ErrCommandFailed carrying "exit_code".
func (e *Executor) Execute(ctx context.Context, c domain.Command, stdout, stderr io.Writer) error {
	if c.Name == "" {
		return nil
	}

	cmdEnv := resolveEnvironment(os.Environ(), c.Env)

	// Resolve the executable path using the new environment's PATH
	executable := c.Name
	if !filepath.IsAbs(c.Name) && !strings.ContainsRune(c.Name, filepath.Separator) {
		lp, err := lookPath(c.Name, cmdEnv)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrToolNotFound, err.Error()), "tool", c.Name)
		}
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, c.Args...) //nolint:gosec // configured tool

	// Restore the original command name in Args[0]
	if len(cmd.Args) > 0 {
		cmd.Args[0] = c.Name
	}

	if c.Dir != "" {
		cmd.Dir = c.Dir
	}

	cmd.Env = cmdEnv
	cmd.Stdout = orDiscard(stdout)
	cmd.Stderr = orDiscard(stderr)

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zerr.With(zerr.Wrap(ctxErr, "command canceled"), "tool", c.Name)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return zerr.With(zerr.Wrap(domain.ErrToolNotFound, err.Error()), "tool", c.Name)
		}
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrCommandFailed, err.Error()), "exit_code", exitErr.ExitCode()), "tool", c.Name)
	}

	return nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// LineWriter forwards complete lines of output to a logger.
type LineWriter struct {
	logger ports.Logger
	warn   bool
	buf    []byte
}

// NewLineWriter creates a LineWriter logging at info level, or at warn level
// when warn is set.
func NewLineWriter(logger ports.Logger, warn bool) *LineWriter {
	return &LineWriter{logger: logger, warn: warn}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close flushes a trailing partial line.
func (w *LineWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *LineWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}

	if w.warn {
		w.logger.Warn(msg)
	} else {
		w.logger.Info(msg)
	}
}

// resolveEnvironment overlays overrides on the system environment.
// The result is sorted so that command environments are deterministic.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/mpy/internal/adapters/logger"
)

func newPlainHandler(t *testing.T, level slog.Level) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}), buf
}

func TestPrettyHandler_Attrs(t *testing.T) {
	h, buf := newPlainHandler(t, slog.LevelInfo)

	slog.New(h).With("target", "auto").Info("deployed", "files", 2)

	assert.Equal(t, "deployed target=auto files=2\n", buf.String())
}

func TestPrettyHandler_Groups(t *testing.T) {
	h, buf := newPlainHandler(t, slog.LevelInfo)

	slog.New(h).WithGroup("run").WithGroup("counts").Warn("done",
		"failed", 1,
		slog.Group("deploy", "ok", 3),
	)

	assert.Equal(t, "! done run.counts.failed=1 run.counts.deploy.ok=3\n", buf.String())
}

func TestPrettyHandler_Levels(t *testing.T) {
	h, buf := newPlainHandler(t, slog.LevelDebug)
	log := slog.New(h)

	log.Debug("scanning")
	log.Error("broken")

	assert.Equal(t, "● scanning\n✗ broken\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h, buf := newPlainHandler(t, slog.LevelWarn)

	slog.New(h).Info("hidden")

	assert.Empty(t, buf.String())
}

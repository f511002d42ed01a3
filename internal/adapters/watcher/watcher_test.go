package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mpy/internal/adapters/watcher"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/mpy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// waitFor reads events until one matches or the timeout expires.
func waitFor(t *testing.T, events <-chan ports.WatchEvent, match func(ports.WatchEvent) bool) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed")
			if match(ev) {
				return ev
			}
		case <-timeout:
			t.Fatal("timed out waiting for watch event")
		}
	}
}

func stream(w ports.Watcher) <-chan ports.WatchEvent {
	ch := make(chan ports.WatchEvent, 100)
	go func() {
		defer close(ch)
		for ev := range w.Events() {
			ch <- ev
		}
	}()
	return ch
}

func TestWatcher_ReportsChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), domain.DirPerm))

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx, root, nil))
	defer func() { _ = w.Stop() }()
	events := stream(w)

	helper := filepath.Join(root, "lib", "helper.py")
	require.NoError(t, os.WriteFile(helper, []byte("x = 1\n"), domain.FilePerm))
	ev := waitFor(t, events, func(ev ports.WatchEvent) bool { return ev.Path == helper })
	assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, ev.Operation)

	// Directories created after Start are picked up.
	nested := filepath.Join(root, "drivers")
	require.NoError(t, os.Mkdir(nested, domain.DirPerm))
	waitFor(t, events, func(ev ports.WatchEvent) bool {
		return ev.Path == nested && ev.Operation == ports.OpCreate
	})

	sensor := filepath.Join(nested, "sensor.py")
	require.Eventually(t, func() bool {
		_ = os.WriteFile(sensor, []byte("y = 2\n"), domain.FilePerm)
		select {
		case ev := <-events:
			return ev.Path == sensor
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_SkipsExcludedDirectories(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "MPY"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "__pycache__"), domain.DirPerm))

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx, root, []string{"MPY"}))
	defer func() { _ = w.Stop() }()
	events := stream(w)

	require.NoError(t, os.WriteFile(filepath.Join(root, "MPY", "main.mpy"), nil, domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(root, "__pycache__", "x.pyc"), nil, domain.FilePerm))
	marker := filepath.Join(root, "main.py")
	require.NoError(t, os.WriteFile(marker, nil, domain.FilePerm))

	ev := waitFor(t, events, func(ports.WatchEvent) bool { return true })
	assert.Equal(t, marker, ev.Path, "events from skipped directories must not be reported")
}

func TestWatcher_StartMissingRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	err = w.Start(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)
	require.ErrorIs(t, err, domain.ErrWatchFailed)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), t.TempDir(), nil))
	events := stream(w)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop(), "stop is idempotent")

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("events did not end after Stop")
	}
}

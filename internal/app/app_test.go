package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mpy/internal/adapters/fs"
	"go.trai.ch/mpy/internal/adapters/telemetry/progrock"
	"go.trai.ch/mpy/internal/app"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/mpy/internal/core/ports/mocks"
	"go.trai.ch/mpy/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

type harness struct {
	cfg      *domain.Config
	loader   *mocks.MockConfigLoader
	compiler *mocks.MockCompiler
	device   *mocks.MockDevice
	executor *mocks.MockExecutor
	archiver *mocks.MockArchiver
	uploader *mocks.MockUploader
	logger   *mocks.MockLogger
	stdout   *bytes.Buffer
	app      *app.App
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	cfg := domain.DefaultConfig(root)
	cfg.Target = "/dev/ttyUSB0"
	cfg.Verbatim = nil
	require.NoError(t, os.MkdirAll(cfg.SourceRoot, domain.DirPerm))

	h := &harness{
		cfg:      &cfg,
		loader:   mocks.NewMockConfigLoader(ctrl),
		compiler: mocks.NewMockCompiler(ctrl),
		device:   mocks.NewMockDevice(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		archiver: mocks.NewMockArchiver(ctrl),
		uploader: mocks.NewMockUploader(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		stdout:   new(bytes.Buffer),
	}
	h.loader.EXPECT().Load(gomock.Any(), "").DoAndReturn(func(string, string) (*domain.Config, error) {
		c := *h.cfg
		return &c, nil
	}).AnyTimes()

	pipe := pipeline.NewPipeline(fs.NewWalker(), fs.NewOracle(), h.compiler, h.device, h.logger)
	h.app = app.New(h.loader, pipe, h.device, h.executor, h.archiver, h.uploader, h.logger).
		WithOutput(h.stdout)
	return h
}

func (h *harness) writeSource(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(h.cfg.SourceRoot, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func compileOK(_ context.Context, task domain.BuildTask, _ domain.CompileOptions) domain.CompilationResult {
	_ = os.MkdirAll(filepath.Dir(task.Artifact.Path), domain.DirPerm)
	_ = os.WriteFile(task.Artifact.Path, []byte("bytecode"), domain.FilePerm)
	return domain.CompilationResult{Task: task, Status: domain.CompileSucceeded}
}

func TestApp_Build(t *testing.T) {
	h := newHarness(t)
	h.writeSource(t, "main.py", "x = 1\n")

	h.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(compileOK)
	h.logger.EXPECT().Info(gomock.Any())

	require.NoError(t, h.app.Build(context.Background(), app.Options{}))
	assert.FileExists(t, filepath.Join(h.cfg.ArtifactRoot, "main.mpy"))
}

func TestApp_Build_FailedFiles(t *testing.T) {
	h := newHarness(t)
	h.writeSource(t, "main.py", "x = (\n")

	h.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.CompilationResult{Status: domain.CompileFailed, Err: domain.ErrCompileFailed})
	h.logger.EXPECT().Info(gomock.Any())

	err := h.app.Build(context.Background(), app.Options{})
	require.ErrorIs(t, err, domain.ErrPipelineFailed)
}

func TestApp_Build_ConfigLoaderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any(), "custom.yaml").Return(nil, domain.ErrConfigParseFailed)

	a := app.New(loader, nil, nil, nil, nil, nil, mocks.NewMockLogger(ctrl))

	err := a.Build(context.Background(), app.Options{ConfigPath: "custom.yaml"})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Build_ObserverSeesStages(t *testing.T) {
	h := newHarness(t)
	observer := &stageCounter{}
	h.app.WithObserver(observer)
	h.logger.EXPECT().Info(gomock.Any())

	require.NoError(t, h.app.Build(context.Background(), app.Options{}))
	assert.Equal(t, int64(1), observer.discoveries.Load())
	assert.Equal(t, int64(1), observer.closed.Load())
}

func TestApp_Log(t *testing.T) {
	h := newHarness(t)
	h.app.WithTape(progrock.Journaled)
	h.writeSource(t, "main.py", "x = 1\n")

	h.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(compileOK)
	h.logger.EXPECT().Info(gomock.Any()).Times(2)

	require.NoError(t, h.app.Build(context.Background(), app.Options{}))

	journals, err := progrock.Journals(h.cfg.JournalDir())
	require.NoError(t, err)
	require.Len(t, journals, 1)

	require.NoError(t, h.app.Log(context.Background(), app.Options{}, ""))
	assert.NotEmpty(t, h.stdout.String())

	err = h.app.Log(context.Background(), app.Options{}, "does-not-exist")
	require.ErrorIs(t, err, progrock.ErrNoJournal)
}

func TestApp_Deploy(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		h.writeSource(t, "main.py", "def run(): pass\n")

		remote := domain.Remote{Tool: domain.DefaultRemoteTool, Target: "/dev/ttyACM0"}
		h.compiler.EXPECT().Compile(gomock.Any(), gomock.Any(), domain.CompileOptions{
			Tool:  domain.DefaultCompiler,
			Level: domain.OptLevel3,
		}).DoAndReturn(compileOK)
		gomock.InOrder(
			h.device.EXPECT().CopyFile(gomock.Any(), remote, gomock.Any(), "main.mpy").Return(nil),
			h.device.EXPECT().Exec(gomock.Any(), remote, "import main").Return("", nil),
			h.device.EXPECT().Exec(gomock.Any(), remote, "import sys; print('main' in sys.modules)").Return("True", nil),
			h.device.EXPECT().Exec(gomock.Any(), remote, "main.run()").Return("", nil),
		)
		h.logger.EXPECT().Info(gomock.Any())

		err := h.app.Deploy(context.Background(), app.Options{Target: "/dev/ttyACM0", OptLevel: "3"})
		require.NoError(t, err)
	})
}

func TestApp_Run(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)

		gomock.InOrder(
			h.device.EXPECT().Exec(gomock.Any(), gomock.Any(), "import main").Return("", nil),
			h.device.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).Return("True", nil),
			h.device.EXPECT().Exec(gomock.Any(), gomock.Any(), "main.run()").Return("", nil),
		)
		h.logger.EXPECT().Info("launched main on /dev/ttyUSB0")

		start := time.Now()
		require.NoError(t, h.app.Run(context.Background(), app.Options{}))
		assert.Equal(t, h.cfg.Launch.Settle, time.Since(start))
	})
}

func TestApp_Run_Mount(t *testing.T) {
	writeArtifact := func(t *testing.T, h *harness, name string) {
		t.Helper()
		require.NoError(t, os.MkdirAll(h.cfg.ArtifactRoot, domain.DirPerm))
		require.NoError(t, os.WriteFile(filepath.Join(h.cfg.ArtifactRoot, name), []byte("x"), domain.FilePerm))
	}

	t.Run("verbatim entry", func(t *testing.T) {
		h := newHarness(t)
		writeArtifact(t, h, "main.py")

		h.logger.EXPECT().Info("running main from " + h.cfg.ArtifactRoot)
		h.logger.EXPECT().Info("hello")
		h.device.EXPECT().
			Mount(gomock.Any(), h.cfg.Remote(), h.cfg.ArtifactRoot, "exec(open('/remote/main.py').read())", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Remote, _, _ string, stdout io.Writer) error {
				_, err := io.WriteString(stdout, "hello\n")
				return err
			})

		require.NoError(t, h.app.Run(context.Background(), app.Options{Mount: true}))
	})

	t.Run("compiled entry", func(t *testing.T) {
		h := newHarness(t)
		writeArtifact(t, h, "main.mpy")

		h.logger.EXPECT().Info(gomock.Any())
		h.device.EXPECT().
			Mount(gomock.Any(), h.cfg.Remote(), h.cfg.ArtifactRoot, "import main", gomock.Any()).
			Return(nil)

		require.NoError(t, h.app.Run(context.Background(), app.Options{Mount: true}))
	})

	t.Run("nothing built", func(t *testing.T) {
		h := newHarness(t)

		err := h.app.Run(context.Background(), app.Options{Mount: true})
		require.ErrorIs(t, err, domain.ErrEntryModuleMissing)
	})
}

func TestApp_Stop(t *testing.T) {
	h := newHarness(t)
	h.device.EXPECT().SoftReset(gomock.Any(), h.cfg.Remote()).Return(nil)
	h.logger.EXPECT().Info("stopped /dev/ttyUSB0")

	require.NoError(t, h.app.Stop(context.Background(), app.Options{}))
}

func TestApp_Reset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		gomock.InOrder(
			h.device.EXPECT().Reset(gomock.Any(), h.cfg.Remote()).Return(nil),
			h.device.EXPECT().Exec(gomock.Any(), h.cfg.Remote(), "import main").Return("", nil),
		)
		h.logger.EXPECT().Info("restarted /dev/ttyUSB0")

		require.NoError(t, h.app.Reset(context.Background(), app.Options{}))
	})
}

func TestApp_Info(t *testing.T) {
	h := newHarness(t)
	h.device.EXPECT().
		Exec(gomock.Any(), h.cfg.Remote(), "import os, gc; print(os.uname()); print('Free memory:', gc.mem_free())").
		Return("(sysname='esp32')\r\nFree memory: 112000", nil)

	require.NoError(t, h.app.Info(context.Background(), app.Options{}))
	assert.Contains(t, h.stdout.String(), "Free memory: 112000")
}

func TestApp_Ports(t *testing.T) {
	h := newHarness(t)
	h.device.EXPECT().ListPorts(gomock.Any(), domain.DefaultRemoteTool).
		Return([]domain.Target{domain.TargetAuto, "/dev/ttyUSB0"}, nil)

	require.NoError(t, h.app.Ports(context.Background(), app.Options{}))
	assert.Equal(t, "auto\n/dev/ttyUSB0\n", h.stdout.String())
}

func TestApp_Ports_Error(t *testing.T) {
	h := newHarness(t)
	h.device.EXPECT().ListPorts(gomock.Any(), gomock.Any()).Return(nil, domain.ErrTargetEnumerationFailed)

	require.ErrorIs(t, h.app.Ports(context.Background(), app.Options{}), domain.ErrTargetEnumerationFailed)
}

func TestApp_Clean(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.MkdirAll(filepath.Join(h.cfg.ArtifactRoot, "lib"), domain.DirPerm))
	h.logger.EXPECT().Info(gomock.Any()).Times(2)

	require.NoError(t, h.app.Clean(context.Background(), app.Options{}))
	assert.NoDirExists(t, h.cfg.ArtifactRoot)
}

func TestApp_Doctor(t *testing.T) {
	h := newHarness(t)

	h.executor.EXPECT().
		Execute(gomock.Any(), domain.Command{Name: domain.DefaultCompiler, Args: []string{"--version"}}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Command, stdout, _ io.Writer) error {
			_, _ = io.WriteString(stdout, "MicroPython v1.22.0 on 2024-01-01; mpy-cross emitting mpy v6.2\n")
			return nil
		})
	h.executor.EXPECT().
		Execute(gomock.Any(), domain.Command{Name: domain.DefaultRemoteTool, Args: []string{"--version"}}, gomock.Any(), gomock.Any()).
		Return(domain.ErrToolNotFound)

	h.logger.EXPECT().Info("MicroPython v1.22.0 on 2024-01-01; mpy-cross emitting mpy v6.2")
	h.logger.EXPECT().Info("mpy-cross is available")

	err := h.app.Doctor(context.Background(), app.Options{})
	require.ErrorIs(t, err, domain.ErrToolNotFound)
}

func TestApp_Archive(t *testing.T) {
	h := newHarness(t)
	h.cfg.Archive.S3 = domain.S3Config{Endpoint: "localhost:9000", Bucket: "firmware"}

	res := domain.ArchiveResult{
		Path:     filepath.Join(h.cfg.Archive.Dir, "firmware-v0.1.0.zip"),
		Version:  "v0.1.0",
		Manifest: domain.Manifest{Files: []domain.ManifestEntry{{Path: "main.mpy"}}},
	}
	h.archiver.EXPECT().Archive(gomock.Any(), gomock.Any(), domain.BumpMinor).Return(res, nil)
	h.uploader.EXPECT().Upload(gomock.Any(), h.cfg.Archive.S3, res.Path).Return("s3://firmware/firmware-v0.1.0.zip", nil)
	h.logger.EXPECT().Info("wrote " + res.Path + " (1 files)")
	h.logger.EXPECT().Info("uploaded firmware-v0.1.0.zip to s3://firmware/firmware-v0.1.0.zip")

	err := h.app.Archive(context.Background(), app.ArchiveOptions{Bump: "minor", Upload: true})
	require.NoError(t, err)
}

func TestApp_Archive_InvalidBump(t *testing.T) {
	h := newHarness(t)

	err := h.app.Archive(context.Background(), app.ArchiveOptions{Bump: "huge"})
	require.ErrorIs(t, err, domain.ErrInvalidBump)
}

func TestApplyOptions(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		cfg := domain.DefaultConfig(t.TempDir())
		err := app.ApplyOptions(&cfg, app.Options{
			Target:   "COM3",
			OptLevel: "none",
			Jobs:     4,
			All:      true,
			Bulk:     true,
			NoLaunch: true,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.Target("COM3"), cfg.Target)
		assert.Equal(t, domain.OptNone, cfg.OptLevel)
		assert.Equal(t, 4, cfg.Parallelism)
		assert.True(t, cfg.Deploy.All)
		assert.Equal(t, domain.PolicyBulk, cfg.Deploy.Policy)
		assert.False(t, cfg.Launch.Enabled)
	})

	t.Run("zero values keep configuration", func(t *testing.T) {
		cfg := domain.DefaultConfig(t.TempDir())
		want := cfg
		require.NoError(t, app.ApplyOptions(&cfg, app.Options{}))
		assert.Equal(t, want, cfg)
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := domain.DefaultConfig(t.TempDir())
		require.ErrorIs(t, app.ApplyOptions(&cfg, app.Options{OptLevel: "7"}), domain.ErrInvalidOptLevel)
	})
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
		h.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

		observer := &stageCounter{}
		events := make(chan ports.WatchEvent)
		w := mocks.NewMockWatcher(gomock.NewController(t))
		w.EXPECT().Start(gomock.Any(), h.cfg.SourceRoot, h.cfg.DiscoveryExclude()).Return(nil)
		w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
			for ev := range events {
				if !yield(ev) {
					return
				}
			}
		}))
		w.EXPECT().Stop().DoAndReturn(func() error {
			close(events)
			return nil
		})

		h.app.
			WithObserver(observer).
			WithDebounce(50 * time.Millisecond).
			WithWatchers(func() (ports.Watcher, error) { return w, nil })

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- h.app.Watch(ctx, app.Options{})
		}()

		synctest.Wait()
		assert.Equal(t, int64(1), observer.discoveries.Load(), "initial deployment")

		events <- ports.WatchEvent{Path: filepath.Join(h.cfg.SourceRoot, "main.py"), Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: filepath.Join(h.cfg.SourceRoot, "lib", "util.py"), Operation: ports.OpCreate}
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int64(2), observer.discoveries.Load(), "one run per batch")

		events <- ports.WatchEvent{Path: filepath.Join(h.cfg.SourceRoot, "notes.txt"), Operation: ports.OpWrite}
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, int64(2), observer.discoveries.Load(), "non-source changes are ignored")

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_Watch_StartError(t *testing.T) {
	h := newHarness(t)
	h.app.WithWatchers(func() (ports.Watcher, error) { return nil, errors.New("too many open files") })

	require.ErrorIs(t, h.app.Watch(context.Background(), app.Options{}), domain.ErrWatchFailed)
}

// stageCounter counts discovery stages and closes.
type stageCounter struct {
	discoveries atomic.Int64
	closed      atomic.Int64
}

func (s *stageCounter) OnStageStart(stage domain.Stage) {
	if stage == domain.StageDiscover {
		s.discoveries.Add(1)
	}
}

func (s *stageCounter) OnFileComplete(domain.Stage, string, error) {}

func (s *stageCounter) OnStageComplete(domain.Stage, domain.StageStatus, domain.Counters) {}

func (s *stageCounter) Close() error {
	s.closed.Add(1)
	return nil
}

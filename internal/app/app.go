// Package app implements the application layer for mpy.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/mpy/internal/adapters/shell"
	"go.trai.ch/mpy/internal/adapters/telemetry"
	"go.trai.ch/mpy/internal/adapters/telemetry/progrock"
	"go.trai.ch/mpy/internal/adapters/watcher"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/mpy/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// infoQuery prints the firmware identification and the free heap of the target.
const infoQuery = "import os, gc; print(os.uname()); print('Free memory:', gc.mem_free())"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	device       ports.Device
	executor     ports.Executor
	archiver     ports.Archiver
	uploader     ports.Uploader
	logger       ports.Logger
	observer     ports.Observer
	tape         progrock.Factory
	watchers     watcher.Factory
	stdout       io.Writer
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	pipe *pipeline.Pipeline,
	device ports.Device,
	executor ports.Executor,
	archiver ports.Archiver,
	uploader ports.Uploader,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		pipeline:     pipe,
		device:       device,
		executor:     executor,
		archiver:     archiver,
		uploader:     uploader,
		logger:       log,
		stdout:       os.Stdout,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithObserver sets the observer that renders run progress.
func (a *App) WithObserver(o ports.Observer) *App {
	a.observer = o
	return a
}

// WithTape records every run on a progrock tape created by f.
func (a *App) WithTape(f progrock.Factory) *App {
	a.tape = f
	return a
}

// WithWatchers sets the factory used by Watch.
func (a *App) WithWatchers(f watcher.Factory) *App {
	a.watchers = f
	return a
}

// WithOutput redirects command output such as port lists and device info.
// This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithDebounce overrides the window used to coalesce file changes in Watch.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// Options are the command line values layered over the loaded configuration.
type Options struct {
	ConfigPath string
	Target     string
	OptLevel   string
	Jobs       int
	Clean      bool
	All        bool
	Bulk       bool
	NoLaunch   bool
	// Mount runs the entry module from the mounted artifact root instead of
	// the device filesystem.
	Mount bool
}

// ArchiveOptions configuration for the Archive method.
type ArchiveOptions struct {
	Options
	Bump   string
	Upload bool
}

// Build compiles stale sources without touching the device.
func (a *App) Build(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	return a.runPipeline(ctx, cfg, domain.BuildOnly(), opts.Clean)
}

// Deploy compiles, transfers and launches the project.
func (a *App) Deploy(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	return a.runPipeline(ctx, cfg, domain.FullPipeline(), opts.Clean)
}

// Run launches the entry module that is already on the device.
func (a *App) Run(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	if opts.Mount {
		return a.runMounted(ctx, cfg)
	}
	if err := a.pipeline.Launch(ctx, cfg); err != nil {
		return err
	}
	a.logger.Info("launched " + cfg.EntryModule + " on " + cfg.Target.String())
	return nil
}

// runMounted mounts the artifact root on the device and runs the entry module
// from it, forwarding the program output until it exits.
func (a *App) runMounted(ctx context.Context, cfg *domain.Config) error {
	code, err := mountDirective(cfg)
	if err != nil {
		return err
	}

	a.logger.Info("running " + cfg.EntryModule + " from " + cfg.ArtifactRoot)
	stdout := shell.NewLineWriter(a.logger, false)
	defer func() {
		_ = stdout.Close()
	}()
	return a.device.Mount(ctx, cfg.Remote(), cfg.ArtifactRoot, code, stdout)
}

// mountDirective returns the code running the entry module from the mount
// point. A verbatim entry is executed from source, a compiled one is imported.
func mountDirective(cfg *domain.Config) (string, error) {
	rel := strings.ReplaceAll(cfg.EntryModule, ".", "/")
	local := filepath.Join(cfg.ArtifactRoot, filepath.FromSlash(rel))

	if _, err := os.Stat(local + domain.SourceExt); err == nil {
		return "exec(open('" + domain.MountPoint + "/" + rel + domain.SourceExt + "').read())", nil
	}
	if _, err := os.Stat(local + domain.ArtifactExt); err == nil {
		return "import " + cfg.EntryModule, nil
	}
	return "", zerr.With(zerr.Wrap(domain.ErrEntryModuleMissing, "no artifact to mount, build first"),
		"entry", cfg.EntryModule)
}

// Stop interrupts the running program with a soft reset.
func (a *App) Stop(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	if err := a.device.SoftReset(ctx, cfg.Remote()); err != nil {
		return err
	}
	a.logger.Info("stopped " + cfg.Target.String())
	return nil
}

// Reset hard-resets the device and imports the entry module again.
func (a *App) Reset(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	if err := a.pipeline.Restart(ctx, cfg); err != nil {
		return err
	}
	a.logger.Info("restarted " + cfg.Target.String())
	return nil
}

// Info prints the firmware identification and free memory of the device.
func (a *App) Info(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	out, err := a.device.Exec(ctx, cfg.Remote(), infoQuery)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.stdout, out)
	return nil
}

// Ports prints the targets that can be passed to --port, auto first.
func (a *App) Ports(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	targets, err := a.device.ListPorts(ctx, cfg.RemoteTool)
	if err != nil {
		return err
	}
	for _, t := range targets {
		_, _ = fmt.Fprintln(a.stdout, t)
	}
	return nil
}

// Log replays the journal of a recorded run, the newest one when runID is
// empty.
func (a *App) Log(_ context.Context, opts Options, runID string) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	journal, err := progrock.Find(cfg.JournalDir(), runID)
	if err != nil {
		return err
	}
	a.logger.Info("run " + journal.RunID + " recorded " + journal.ModTime.Format(time.DateTime))
	return progrock.Replay(journal, a.stdout)
}

// Clean removes the artifact root.
func (a *App) Clean(_ context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removing %s...", cfg.ArtifactRoot))
	if err := pipeline.Clean(cfg); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed %s", cfg.ArtifactRoot))
	return nil
}

// Doctor checks that the compiler and the device tool can be spawned and
// logs their versions.
func (a *App) Doctor(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	var errs error
	for _, tool := range []string{cfg.Compiler, cfg.RemoteTool} {
		stdout := shell.NewLineWriter(a.logger, false)
		stderr := shell.NewLineWriter(a.logger, true)

		err := a.executor.Execute(ctx, domain.Command{Name: tool, Args: []string{"--version"}}, stdout, stderr)
		_ = stdout.Close()
		_ = stderr.Close()

		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		a.logger.Info(tool + " is available")
	}
	return errs
}

// Archive packs the artifact root into the next archive version and
// optionally uploads it.
func (a *App) Archive(ctx context.Context, opts ArchiveOptions) error {
	cfg, err := a.loadConfig(opts.Options)
	if err != nil {
		return err
	}
	bump, err := domain.ParseBump(opts.Bump)
	if err != nil {
		return err
	}

	res, err := a.archiver.Archive(ctx, cfg, bump)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("wrote %s (%d files)", res.Path, len(res.Manifest.Files)))

	if !opts.Upload {
		return nil
	}
	location, err := a.uploader.Upload(ctx, cfg.Archive.S3, res.Path)
	if err != nil {
		return err
	}
	a.logger.Info("uploaded " + res.FileName() + " to " + location)
	return nil
}

// Watch deploys once and then again after every batch of source changes,
// until ctx is canceled.
func (a *App) Watch(ctx context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}
	if a.watchers == nil {
		return zerr.Wrap(domain.ErrWatchFailed, "no watcher configured")
	}

	w, err := a.watchers()
	if err != nil {
		return zerr.Wrap(domain.ErrWatchFailed, err.Error())
	}
	if err := w.Start(ctx, cfg.SourceRoot, cfg.DiscoveryExclude()); err != nil {
		return err
	}
	defer func() {
		_ = w.Stop()
	}()

	changes := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func([]string) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()
	go func() {
		for ev := range w.Events() {
			if strings.EqualFold(filepath.Ext(ev.Path), domain.SourceExt) {
				debouncer.Add(ev.Path)
			}
		}
	}()

	a.logger.Info("watching " + cfg.SourceRoot)
	a.watchRun(ctx, cfg, opts.Clean)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			a.watchRun(ctx, cfg, false)
		}
	}
}

// watchRun runs one deployment and reports failures without ending the watch.
func (a *App) watchRun(ctx context.Context, cfg *domain.Config, clean bool) {
	err := a.runPipeline(ctx, cfg, domain.FullPipeline(), clean)
	switch {
	case err == nil, ctx.Err() != nil:
	case errors.Is(err, domain.ErrPipelineFailed):
		a.logger.Warn("deployment finished with failures, waiting for changes")
	default:
		a.logger.Error(err)
	}
}

func (a *App) runPipeline(ctx context.Context, cfg *domain.Config, stages domain.Stages, clean bool) error {
	runID := uuid.NewString()
	observer := a.observerFor(cfg, runID)
	defer func() {
		_ = observer.Close()
	}()

	run, err := a.pipeline.Run(ctx, cfg, pipeline.Options{
		Stages:   stages,
		Clean:    clean,
		Observer: observer,
		RunID:    runID,
	})
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("%s in %s", run.Counters, run.Duration().Round(time.Millisecond)))
	if run.Failed() {
		return zerr.With(zerr.Wrap(domain.ErrPipelineFailed, run.Counters.String()), "run", run.ID)
	}
	return nil
}

func (a *App) observerFor(cfg *domain.Config, runID string) ports.Observer {
	var observers telemetry.Fanout
	if a.observer != nil {
		observers = append(observers, a.observer)
	}
	if a.tape != nil {
		recorder, err := a.tape(cfg.JournalDir(), runID)
		if err != nil {
			a.logger.Warn("run is not journaled: " + err.Error())
		} else {
			observers = append(observers, recorder)
		}
	}
	return observers
}

func (a *App) loadConfig(opts Options) (*domain.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOptions layers command line values over cfg. Zero values keep the
// configured setting.
func applyOptions(cfg *domain.Config, opts Options) error {
	if opts.Target != "" {
		cfg.Target = domain.Target(opts.Target)
	}
	if opts.OptLevel != "" {
		level, err := domain.ParseOptLevel(opts.OptLevel)
		if err != nil {
			return err
		}
		cfg.OptLevel = level
	}
	if opts.Jobs > 0 {
		cfg.Parallelism = opts.Jobs
	}
	if opts.All {
		cfg.Deploy.All = true
	}
	if opts.Bulk {
		cfg.Deploy.Policy = domain.PolicyBulk
	}
	if opts.NoLaunch {
		cfg.Launch.Enabled = false
	}
	return cfg.Validate()
}

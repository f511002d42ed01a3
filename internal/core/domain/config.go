package domain

import (
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

// DeployPolicy selects how artifacts are transferred to the device.
type DeployPolicy string

const (
	// PolicyPerFile transfers each artifact separately with per-unit error isolation.
	PolicyPerFile DeployPolicy = "per-file"
	// PolicyBulk copies the whole artifact root in one recursive operation.
	PolicyBulk DeployPolicy = "bulk"
)

// Config is the configuration snapshot of one pipeline run.
// All paths are absolute once produced by the config loader.
type Config struct {
	// Root is the directory holding mpy.yaml, or the working directory.
	Root         string
	SourceRoot   string
	ArtifactRoot string
	EntryModule  string
	OptLevel     OptLevel
	Target       Target
	Exclude      []string
	Verbatim     []string
	Parallelism  int
	Compiler     string
	RemoteTool   string
	Deploy       DeployConfig
	Launch       LaunchConfig
	Archive      ArchiveConfig
}

// DeployConfig configures the deployment stage.
type DeployConfig struct {
	Policy DeployPolicy
	// All deploys up-to-date artifacts too, not only the ones compiled in this run.
	All bool
}

// LaunchConfig configures the launch trigger.
type LaunchConfig struct {
	Enabled  bool
	Settle   time.Duration
	Poll     time.Duration
	Attempts int
}

// ArchiveConfig configures artifact archives.
type ArchiveConfig struct {
	Dir  string
	Name string
	S3   S3Config
}

// S3Config locates an S3 compatible bucket receiving archives.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	Prefix    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Enabled reports whether an upload destination is configured.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// DefaultConfig returns the configuration used when no mpy.yaml exists.
func DefaultConfig(root string) Config {
	return Config{
		Root:         root,
		SourceRoot:   filepath.Join(root, DefaultSourceRoot),
		ArtifactRoot: filepath.Join(root, DefaultArtifactRoot),
		EntryModule:  DefaultEntryModule,
		OptLevel:     DefaultOptLevel,
		Target:       TargetAuto,
		Verbatim:     []string{DefaultEntryModule + SourceExt},
		Parallelism:  1,
		Compiler:     DefaultCompiler,
		RemoteTool:   DefaultRemoteTool,
		Deploy: DeployConfig{
			Policy: PolicyPerFile,
		},
		Launch: LaunchConfig{
			Enabled:  true,
			Settle:   500 * time.Millisecond,
			Poll:     250 * time.Millisecond,
			Attempts: 3,
		},
		Archive: ArchiveConfig{
			Dir:  DefaultArchivePath(root),
			Name: DefaultArchiveName,
		},
	}
}

// Validate checks the invariants the pipeline relies on.
func (c *Config) Validate() error {
	if c.SourceRoot == "" {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "source root is empty"), "field", "source")
	}
	if c.ArtifactRoot == "" {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "artifact root is empty"), "field", "artifacts")
	}
	if err := c.CheckArtifactRoot(); err != nil {
		return err
	}
	if c.OptLevel < OptNone || c.OptLevel > OptLevel3 {
		return zerr.With(zerr.Wrap(ErrInvalidOptLevel, "invalid optimization level"), "value", int(c.OptLevel))
	}
	if c.Parallelism < 1 {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "parallelism must be at least 1"), "parallelism", c.Parallelism)
	}
	switch c.Deploy.Policy {
	case PolicyPerFile, PolicyBulk:
	default:
		return zerr.With(zerr.Wrap(ErrInvalidDeployPolicy, "invalid deploy policy"), "policy", string(c.Deploy.Policy))
	}
	if c.EntryModule == "" {
		return zerr.With(zerr.Wrap(ErrInvalidConfig, "entry module is empty"), "field", "entry")
	}
	return nil
}

// DiscoveryExclude returns the names skipped during discovery. The artifact
// root's name is added when it lies inside the source root.
func (c *Config) DiscoveryExclude() []string {
	exclude := append([]string(nil), c.Exclude...)
	rel, err := filepath.Rel(filepath.Clean(c.SourceRoot), filepath.Clean(c.ArtifactRoot))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return exclude
	}
	return append(exclude, filepath.Base(c.ArtifactRoot))
}

// JournalDir returns the directory holding the run journals.
func (c *Config) JournalDir() string {
	return filepath.Join(c.Root, StateDir, "runs")
}

// CheckArtifactRoot rejects an artifact root that equals or contains the
// source root. The artifact root is removed by clean runs, so it must never
// hold sources.
func (c *Config) CheckArtifactRoot() error {
	rel, err := filepath.Rel(filepath.Clean(c.ArtifactRoot), filepath.Clean(c.SourceRoot))
	if err != nil {
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return zerr.With(zerr.With(zerr.Wrap(ErrArtifactRootOverlap, "artifact root contains the source root"),
		"artifacts", c.ArtifactRoot), "source", c.SourceRoot)
}

// IsVerbatim reports whether a source with the given base name is copied
// instead of compiled.
func (c *Config) IsVerbatim(name string) bool {
	if !c.OptLevel.Compiles() {
		return true
	}
	for _, pattern := range c.Verbatim {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// ArtifactExtFor returns the artifact extension for a source base name.
func (c *Config) ArtifactExtFor(name string) string {
	if c.IsVerbatim(name) {
		return SourceExt
	}
	return ArtifactExt
}

// Remote returns the device address configured for this run.
func (c *Config) Remote() Remote {
	return Remote{Tool: c.RemoteTool, Target: c.Target}
}

// CompileOptions returns the compiler settings configured for this run.
func (c *Config) CompileOptions() CompileOptions {
	return CompileOptions{Tool: c.Compiler, Level: c.OptLevel}
}

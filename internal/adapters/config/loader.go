// Package config provides the configuration loader for mpy.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "MPY_"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using mpy.yaml, an optional .env file
// and MPY_* environment variables, in increasing order of precedence.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration for cwd. An explicit path must exist;
// otherwise mpy.yaml is searched from cwd upwards and defaults rooted at cwd
// are used when none is found.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	configPath, err := l.findConfiguration(absCwd, path)
	if err != nil {
		return nil, err
	}

	root := absCwd
	var file File
	if configPath != "" {
		root = filepath.Dir(configPath)
		if err := readAndUnmarshalYAML(configPath, &file); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
	}

	env, err := l.loadEnv(root)
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig(root)
	if err := applyFile(&cfg, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	if err := applyEnv(&cfg, env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if excluded := cfg.DiscoveryExclude(); len(excluded) > len(cfg.Exclude) {
		l.Logger.Warn("artifact root " + cfg.ArtifactRoot + " is inside the source root, excluding it from discovery")
	}

	return &cfg, nil
}

func (l *Loader) findConfiguration(cwd, explicit string) (string, error) {
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(cwd, explicit)
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", explicit)
		}
		return explicit, nil
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", nil
		}
		currentDir = parentDir
	}
}

// loadEnv returns the MPY_* variables from the process environment layered
// over the ones from the project's .env file.
func (l *Loader) loadEnv(root string) (map[string]string, error) {
	env := make(map[string]string)

	envPath := filepath.Join(root, domain.EnvFileName)
	fileEnv, err := godotenv.Read(envPath)
	switch {
	case err == nil:
		for k, v := range fileEnv {
			if strings.HasPrefix(k, EnvPrefix) {
				env[k] = v
			}
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvFileLoadFailed.Error()), "path", envPath)
	}

	for _, entry := range os.Environ() {
		if k, v, ok := strings.Cut(entry, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}

	return env, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

// applyFile copies every set field of the file onto cfg.
//
//nolint:cyclop // flat field mapping
func applyFile(cfg *domain.Config, f *File) error {
	if f.Source != "" {
		cfg.SourceRoot = resolvePath(cfg.Root, f.Source)
	}
	if f.Artifacts != "" {
		cfg.ArtifactRoot = resolvePath(cfg.Root, f.Artifacts)
	}
	if f.Entry != "" {
		cfg.EntryModule = f.Entry
	}
	if f.OptLevel != "" {
		level, err := domain.ParseOptLevel(f.OptLevel)
		if err != nil {
			return err
		}
		cfg.OptLevel = level
	}
	if f.Target != "" {
		cfg.Target = domain.Target(f.Target)
	}
	if f.Exclude != nil {
		cfg.Exclude = f.Exclude
	}
	if f.Verbatim != nil {
		cfg.Verbatim = f.Verbatim
	}
	if f.Parallelism != 0 {
		cfg.Parallelism = f.Parallelism
	}
	if f.Tools.Compiler != "" {
		cfg.Compiler = f.Tools.Compiler
	}
	if f.Tools.Remote != "" {
		cfg.RemoteTool = f.Tools.Remote
	}
	if f.Deploy.Policy != "" {
		cfg.Deploy.Policy = domain.DeployPolicy(f.Deploy.Policy)
	}
	cfg.Deploy.All = f.Deploy.All

	applyLaunch(&cfg.Launch, &f.Launch)
	applyArchive(cfg, &f.Archive)
	return nil
}

func applyLaunch(cfg *domain.LaunchConfig, f *LaunchDTO) {
	if f.Enabled != nil {
		cfg.Enabled = *f.Enabled
	}
	if f.Settle > 0 {
		cfg.Settle = f.Settle
	}
	if f.Poll > 0 {
		cfg.Poll = f.Poll
	}
	if f.Attempts > 0 {
		cfg.Attempts = f.Attempts
	}
}

func applyArchive(cfg *domain.Config, f *ArchiveDTO) {
	if f.Dir != "" {
		cfg.Archive.Dir = resolvePath(cfg.Root, f.Dir)
	}
	if f.Name != "" {
		cfg.Archive.Name = f.Name
	}

	s3 := &cfg.Archive.S3
	s3.Endpoint = f.S3.Endpoint
	s3.Bucket = f.S3.Bucket
	s3.Region = f.S3.Region
	s3.Prefix = f.S3.Prefix
	s3.AccessKey = f.S3.AccessKey
	s3.SecretKey = f.S3.SecretKey
	s3.UseSSL = true
	if f.S3.UseSSL != nil {
		s3.UseSSL = *f.S3.UseSSL
	}
}

// applyEnv applies MPY_* overrides.
//
//nolint:cyclop // flat field mapping
func applyEnv(cfg *domain.Config, env map[string]string) error {
	str := func(key string, dst *string) {
		if v, ok := env[EnvPrefix+key]; ok && v != "" {
			*dst = v
		}
	}

	if v := env[EnvPrefix+"SOURCE"]; v != "" {
		cfg.SourceRoot = resolvePath(cfg.Root, v)
	}
	if v := env[EnvPrefix+"ARTIFACTS"]; v != "" {
		cfg.ArtifactRoot = resolvePath(cfg.Root, v)
	}
	str("ENTRY", &cfg.EntryModule)
	if v := env[EnvPrefix+"OPT_LEVEL"]; v != "" {
		level, err := domain.ParseOptLevel(v)
		if err != nil {
			return zerr.With(err, "env", EnvPrefix+"OPT_LEVEL")
		}
		cfg.OptLevel = level
	}
	if v := env[EnvPrefix+"TARGET"]; v != "" {
		cfg.Target = domain.Target(v)
	}
	if v := env[EnvPrefix+"PARALLELISM"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "parallelism is not a number"), "env", EnvPrefix+"PARALLELISM")
		}
		cfg.Parallelism = n
	}
	str("COMPILER", &cfg.Compiler)
	str("REMOTE", &cfg.RemoteTool)
	if v := env[EnvPrefix+"DEPLOY_POLICY"]; v != "" {
		cfg.Deploy.Policy = domain.DeployPolicy(v)
	}

	s3 := &cfg.Archive.S3
	str("S3_ENDPOINT", &s3.Endpoint)
	str("S3_BUCKET", &s3.Bucket)
	str("S3_REGION", &s3.Region)
	str("S3_PREFIX", &s3.Prefix)
	str("S3_ACCESS_KEY", &s3.AccessKey)
	str("S3_SECRET_KEY", &s3.SecretKey)
	if v := env[EnvPrefix+"S3_USE_SSL"]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "use_ssl is not a boolean"), "env", EnvPrefix+"S3_USE_SSL")
		}
		s3.UseSSL = b
	}

	return nil
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

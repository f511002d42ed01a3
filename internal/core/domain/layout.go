package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "mpy.yaml"

	// EnvFileName is the name of the optional dotenv file loaded next to the configuration.
	EnvFileName = ".env"

	// DefaultSourceRoot is the source root used when no configuration overrides it.
	DefaultSourceRoot = "PY"

	// DefaultArtifactRoot is the artifact root used when no configuration overrides it.
	DefaultArtifactRoot = "MPY"

	// DefaultEntryModule is the module imported and run on the device after deployment.
	DefaultEntryModule = "main"

	// StateDir holds the run journals below the project root.
	StateDir = ".mpy"

	// DefaultArchiveDir is the directory receiving artifact archives.
	DefaultArchiveDir = "dist"

	// DefaultArchiveName is the base name of artifact archives.
	DefaultArchiveName = "firmware"

	// SourceExt is the extension of discoverable source files.
	SourceExt = ".py"

	// ArtifactExt is the extension of compiled artifacts.
	ArtifactExt = ".mpy"

	// MountPoint is where the device tool mounts a host directory.
	MountPoint = "/remote"

	// DefaultCompiler is the cross-compiler executable.
	DefaultCompiler = "mpy-cross"

	// DefaultRemoteTool is the device communication executable.
	DefaultRemoteTool = "mpremote"

	// ManifestFileName is the name of the checksum manifest stored inside archives.
	ManifestFileName = "manifest.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultArchivePath returns the archive directory below the given project root.
func DefaultArchivePath(root string) string {
	return filepath.Join(root, DefaultArchiveDir)
}

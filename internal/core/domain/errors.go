package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidOptLevel is returned when an optimization level is outside 0-3 and not "none".
	ErrInvalidOptLevel = zerr.New("invalid optimization level, expected 0-3 or 'none'")

	// ErrInvalidDeployPolicy is returned when the deploy policy is unknown.
	ErrInvalidDeployPolicy = zerr.New("invalid deploy policy, expected 'per-file' or 'bulk'")

	// ErrInvalidConfig is returned when a configuration value is unusable.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrArtifactRootOverlap is returned when the artifact root equals or contains the source root.
	ErrArtifactRootOverlap = zerr.New("artifact root must not contain the source root")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileLoadFailed is returned when the dotenv file exists but cannot be loaded.
	ErrEnvFileLoadFailed = zerr.New("failed to load env file")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrTargetBusy is returned when another run holds the same target.
	ErrTargetBusy = zerr.New("target is busy with another run")

	// ErrPipelineFailed is returned when a run finished with failed files or aborted.
	ErrPipelineFailed = zerr.New("pipeline finished with failures")

	// ErrCleanFailed is returned when the artifact root cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean artifact root")

	// ErrArtifactDirCreateFailed is returned when the local artifact directory cannot be created.
	ErrArtifactDirCreateFailed = zerr.New("failed to create artifact directory")

	// ErrCompileFailed is returned when the compiler exits non-zero or cannot be spawned.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrCopyFailed is returned when a verbatim source cannot be copied.
	ErrCopyFailed = zerr.New("failed to copy source")

	// ErrCommandFailed is returned when an external command exits non-zero.
	ErrCommandFailed = zerr.New("command failed")

	// ErrDirectoryExists is returned by the device when a remote directory already exists.
	ErrDirectoryExists = zerr.New("remote directory already exists")

	// ErrDirectoryCreateFailed is returned when a remote directory cannot be created.
	ErrDirectoryCreateFailed = zerr.New("failed to create remote directory")

	// ErrTransferFailed is returned when copying an artifact to the device fails.
	ErrTransferFailed = zerr.New("failed to transfer artifact")

	// ErrTargetEnumerationFailed is returned when listing available targets fails.
	ErrTargetEnumerationFailed = zerr.New("failed to list targets")

	// ErrEntryModuleMissing is returned when the entry module has no artifact to launch.
	ErrEntryModuleMissing = zerr.New("entry module not found")

	// ErrLaunchFailed is returned when the load or run directive fails.
	ErrLaunchFailed = zerr.New("failed to launch entry module")

	// ErrLaunchNotReady is returned when the device never confirms the entry module was loaded.
	ErrLaunchNotReady = zerr.New("entry module not loaded on target")

	// ErrDeviceCommandFailed is returned when a device directive such as reset fails.
	ErrDeviceCommandFailed = zerr.New("device command failed")

	// ErrToolNotFound is returned when an external tool cannot be spawned.
	ErrToolNotFound = zerr.New("tool not found")

	// ErrInvalidBump is returned when a version bump kind is unknown.
	ErrInvalidBump = zerr.New("invalid version bump, expected 'patch', 'minor' or 'major'")

	// ErrArchiveFailed is returned when the artifact archive cannot be written.
	ErrArchiveFailed = zerr.New("failed to write archive")

	// ErrArchiveEmpty is returned when there are no artifacts to archive.
	ErrArchiveEmpty = zerr.New("no artifacts to archive")

	// ErrUploadFailed is returned when an archive cannot be uploaded.
	ErrUploadFailed = zerr.New("failed to upload archive")

	// ErrUploadNotConfigured is returned when an upload is requested without an S3 destination.
	ErrUploadNotConfigured = zerr.New("archive upload is not configured")

	// ErrWatchFailed is returned when the source root cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch source root")
)

package domain

// CompileStatus is the outcome of compiling one BuildTask.
type CompileStatus uint8

const (
	// CompileSucceeded means the artifact now exists on disk.
	CompileSucceeded CompileStatus = iota
	// CompileFailed means no usable artifact was produced.
	CompileFailed
)

// String returns the string representation of the CompileStatus.
func (s CompileStatus) String() string {
	if s == CompileFailed {
		return "failed"
	}
	return "succeeded"
}

// CompilationResult is the outcome of attempting to compile one BuildTask.
type CompilationResult struct {
	Task   BuildTask
	Status CompileStatus
	// Diagnostics holds the merged output of the compiler, or the spawn error.
	Diagnostics string
	Err         error
}

// Artifact returns the produced artifact. The boolean is false for failed
// results, which must never be deployed.
func (r CompilationResult) Artifact() (ArtifactRef, bool) {
	if r.Status != CompileSucceeded {
		return ArtifactRef{}, false
	}
	a := r.Task.Artifact
	a.Exists = true
	return a, true
}

// DeploymentUnit is one artifact and its destination on the device.
type DeploymentUnit struct {
	Artifact ArtifactRef
	// Destination is root-relative and always uses forward slashes.
	Destination string
}

// NewDeploymentUnit derives the unit for an artifact.
func NewDeploymentUnit(a ArtifactRef) DeploymentUnit {
	return DeploymentUnit{Artifact: a, Destination: a.RemotePath()}
}

// Parents returns the remote directories that must exist before transfer.
func (u DeploymentUnit) Parents() []string {
	return RemoteParents(u.Destination)
}

// DeployResult records the outcome of transferring one unit.
type DeployResult struct {
	Unit DeploymentUnit
	Err  error
	// Warnings holds directory creation errors that did not stop the transfer.
	Warnings []error
}

// OK reports whether the transfer succeeded.
func (r DeployResult) OK() bool {
	return r.Err == nil
}

package ports

import (
	"context"
	"io"

	"go.trai.ch/mpy/internal/core/domain"
)

// Device defines the operations issued to a MicroPython board.
//
//go:generate mockgen -source=device.go -destination=mocks/mock_device.go -package=mocks
type Device interface {
	// MakeDir creates one remote directory. It returns domain.ErrDirectoryExists
	// when the directory is already present.
	MakeDir(ctx context.Context, remote domain.Remote, dir string) error
	// CopyFile transfers one local file to a remote path.
	CopyFile(ctx context.Context, remote domain.Remote, local, dest string) error
	// CopyTree recursively copies the contents of a local directory to the remote root.
	CopyTree(ctx context.Context, remote domain.Remote, localRoot string) error
	// Exec runs a snippet of Python on the device and returns its output.
	Exec(ctx context.Context, remote domain.Remote, code string) (string, error)
	// Mount mounts localDir at domain.MountPoint and runs code there. The
	// program output is streamed to stdout until it exits or ctx is canceled.
	Mount(ctx context.Context, remote domain.Remote, localDir, code string, stdout io.Writer) error
	// SoftReset interrupts the running program.
	SoftReset(ctx context.Context, remote domain.Remote) error
	// Reset performs a hard reset.
	Reset(ctx context.Context, remote domain.Remote) error
	// ListPorts returns candidate targets. TargetAuto is always first.
	ListPorts(ctx context.Context, tool string) ([]domain.Target, error)
}

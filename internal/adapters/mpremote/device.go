// Package mpremote talks to MicroPython boards through the mpremote tool.
package mpremote

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Device = (*Device)(nil)

// existsMarkers identify a mkdir failure caused by a directory that is already present.
var existsMarkers = []string{"already exists", "EEXIST", "File exists"}

// portPatterns match serial device names worth offering as targets, per GOOS.
var portPatterns = map[string]*regexp.Regexp{
	"linux":   regexp.MustCompile(`^/dev/tty(USB|ACM)\d+$`),
	"darwin":  regexp.MustCompile(`^/dev/(cu|tty)\.(usbserial|usbmodem|SLAB_USBtoUART|wchusbserial)`),
	"windows": regexp.MustCompile(`^COM\d+$`),
}

// Device implements ports.Device by running the device tool through an Executor.
type Device struct {
	executor ports.Executor
	goos     string
}

// NewDevice creates a new Device filtering ports for the host platform.
func NewDevice(executor ports.Executor) *Device {
	return &Device{executor: executor, goos: runtime.GOOS}
}

// NewDeviceForOS creates a Device filtering ports for the given GOOS.
func NewDeviceForOS(executor ports.Executor, goos string) *Device {
	return &Device{executor: executor, goos: goos}
}

// MakeDir creates dir on the device.
func (d *Device) MakeDir(ctx context.Context, remote domain.Remote, dir string) error {
	stdout, stderr, err := d.connect(ctx, remote, "fs", "mkdir", ":"+dir)
	if err == nil {
		return nil
	}
	combined := stdout + stderr
	for _, marker := range existsMarkers {
		if strings.Contains(combined, marker) {
			return domain.ErrDirectoryExists
		}
	}
	return zerr.With(zerr.Wrap(domain.ErrDirectoryCreateFailed, detail(stderr, err)), "dir", dir)
}

// CopyFile transfers local to dest on the device.
func (d *Device) CopyFile(ctx context.Context, remote domain.Remote, local, dest string) error {
	_, stderr, err := d.connect(ctx, remote, "fs", "cp", local, ":"+dest)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrTransferFailed, detail(stderr, err)), "file", dest)
	}
	return nil
}

// CopyTree copies the contents of localRoot to the device root.
func (d *Device) CopyTree(ctx context.Context, remote domain.Remote, localRoot string) error {
	src := strings.TrimSuffix(localRoot, string(filepath.Separator)) + string(filepath.Separator) + "."
	_, stderr, err := d.connect(ctx, remote, "fs", "cp", "-r", src, ":/")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrTransferFailed, detail(stderr, err)), "path", localRoot)
	}
	return nil
}

// Exec runs code on the device and returns what it printed.
func (d *Device) Exec(ctx context.Context, remote domain.Remote, code string) (string, error) {
	stdout, stderr, err := d.connect(ctx, remote, "exec", code)
	if err != nil {
		return stdout, zerr.With(zerr.Wrap(domain.ErrDeviceCommandFailed, detail(stderr, err)), "code", code)
	}
	return strings.TrimRight(stdout, "\r\n"), nil
}

// mountSettle is the pause the device tool takes after mounting, before it
// runs code.
const mountSettle = "0.5"

// Mount mounts localDir and runs code with the mount as working directory.
func (d *Device) Mount(ctx context.Context, remote domain.Remote, localDir, code string, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := domain.Command{
		Name: remote.Tool,
		Args: []string{"connect", remote.Target.String(), "mount", localDir, "sleep", mountSettle, "exec", code},
	}
	if err := d.executor.Execute(ctx, cmd, stdout, &stderr); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLaunchFailed, detail(stderr.String(), err)), "dir", localDir)
	}
	return nil
}

// SoftReset interrupts the running program.
func (d *Device) SoftReset(ctx context.Context, remote domain.Remote) error {
	_, stderr, err := d.connect(ctx, remote, "soft-reset")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDeviceCommandFailed, detail(stderr, err)), "command", "soft-reset")
	}
	return nil
}

// Reset performs a hard reset.
func (d *Device) Reset(ctx context.Context, remote domain.Remote) error {
	_, stderr, err := d.connect(ctx, remote, "reset")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDeviceCommandFailed, detail(stderr, err)), "command", "reset")
	}
	return nil
}

// ListPorts runs "connect list" and keeps the ports matching the platform patterns.
func (d *Device) ListPorts(ctx context.Context, tool string) ([]domain.Target, error) {
	var stdout, stderr bytes.Buffer
	cmd := domain.Command{Name: tool, Args: []string{"connect", "list"}}
	if err := d.executor.Execute(ctx, cmd, &stdout, &stderr); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTargetEnumerationFailed, detail(stderr.String(), err)), "tool", tool)
	}
	return append([]domain.Target{domain.TargetAuto}, d.parsePorts(stdout.String())...), nil
}

func (d *Device) parsePorts(output string) []domain.Target {
	pattern, ok := portPatterns[d.goos]
	seen := make(map[string]struct{})
	var targets []domain.Target

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		if ok && !pattern.MatchString(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		targets = append(targets, domain.Target(name))
	}
	return targets
}

func (d *Device) connect(ctx context.Context, remote domain.Remote, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := domain.Command{
		Name: remote.Tool,
		Args: append([]string{"connect", remote.Target.String()}, args...),
	}
	err := d.executor.Execute(ctx, cmd, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

// detail prefers the tool's own error output over the exit status.
func detail(stderr string, err error) string {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return msg
	}
	return err.Error()
}

// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/mpy/internal/core/domain"
)

// Executor defines the interface for running external tools.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and streams its output to stdout and stderr.
	//
	// It returns an error if the command cannot be spawned or exits non-zero.
	// The exit code is attached to the error as "exit_code".
	Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error
}

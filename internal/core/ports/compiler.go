package ports

import (
	"context"

	"go.trai.ch/mpy/internal/core/domain"
)

// Compiler turns one stale BuildTask into an artifact.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile produces the task's artifact. Verbatim tasks are copied.
	// Failures are reported in the returned result, never as a separate error.
	Compile(ctx context.Context, task domain.BuildTask, opts domain.CompileOptions) domain.CompilationResult
}

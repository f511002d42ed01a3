// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mpy/internal/adapters/archive"
	_ "go.trai.ch/mpy/internal/adapters/config"
	_ "go.trai.ch/mpy/internal/adapters/fs"
	_ "go.trai.ch/mpy/internal/adapters/linear"
	_ "go.trai.ch/mpy/internal/adapters/logger"
	_ "go.trai.ch/mpy/internal/adapters/mpremote"
	_ "go.trai.ch/mpy/internal/adapters/mpycross"
	_ "go.trai.ch/mpy/internal/adapters/shell"
	_ "go.trai.ch/mpy/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/mpy/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/mpy/internal/app"
	_ "go.trai.ch/mpy/internal/engine/pipeline"
)

package ports

import "go.trai.ch/mpy/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for the given working directory.
	// When path is non-empty it names the config file explicitly.
	Load(cwd, path string) (*domain.Config, error)
}

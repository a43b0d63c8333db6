// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/keel/internal/core/domain"

// ConfigSource reads override files into an override map.
//
//go:generate go run go.uber.org/mock/mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigSource interface {
	// Load reads the files in order. Missing files are skipped; a later file
	// wins on duplicate keys. A malformed line fails the whole load.
	Load(paths []string) (domain.Overrides, error)
}

// ProjectLoader reads the optional project file.
type ProjectLoader interface {
	// Load reads the project file at path.
	// Returns nil, nil if the file does not exist.
	Load(path string) (*domain.Project, error)
}

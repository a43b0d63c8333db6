package ports

import "go.trai.ch/keel/internal/core/domain"

// Emitter serializes a descriptor for the downstream build platform.
//
//go:generate go run go.uber.org/mock/mockgen -source=emitter.go -destination=mocks/mock_emitter.go -package=mocks
type Emitter interface {
	// Format returns the name used to select the emitter.
	Format() string
	// Emit serializes the descriptor. The same descriptor always yields the same bytes.
	Emit(descriptor *domain.BuildDescriptor) ([]byte, error)
}

// EmitterRegistry looks up emitters by format name.
type EmitterRegistry interface {
	// Get returns the emitter for format.
	Get(format string) (Emitter, error)
	// Formats returns the registered format names in sorted order.
	Formats() []string
}

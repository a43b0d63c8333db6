// Package emitter serializes build descriptors for the downstream build platform.
package emitter

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry implements ports.EmitterRegistry.
type Registry struct {
	emitters map[string]ports.Emitter
}

// NewRegistry creates a registry holding the given emitters.
func NewRegistry(emitters ...ports.Emitter) *Registry {
	r := &Registry{emitters: make(map[string]ports.Emitter, len(emitters))}
	for _, e := range emitters {
		r.emitters[e.Format()] = e
	}
	return r
}

// NewDefaultRegistry creates a registry with the gradle, yaml and json emitters.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewGradleEmitter(), NewYAMLEmitter(), NewJSONEmitter())
}

// Get returns the emitter for format. Format names are case-insensitive.
func (r *Registry) Get(format string) (ports.Emitter, error) {
	if e, ok := r.emitters[strings.ToLower(format)]; ok {
		return e, nil
	}
	err := zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "no emitter for format"), "format", format)
	return nil, zerr.With(err, "available", strings.Join(r.Formats(), ", "))
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []string {
	return slices.Sorted(maps.Keys(r.emitters))
}

func validate(descriptor *domain.BuildDescriptor) error {
	if descriptor == nil {
		return zerr.Wrap(domain.ErrInvalidDescriptor, "descriptor is nil")
	}
	return descriptor.Validate()
}

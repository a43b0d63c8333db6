package ports

import "go.trai.ch/keel/internal/core/domain"

// DescriptorResolver merges overrides, defaults and the platform context into a descriptor.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DescriptorResolver interface {
	// Resolve returns a validated descriptor or the first invariant violation.
	// It performs no I/O.
	Resolve(
		overrides domain.Overrides,
		defaults domain.DefaultSet,
		platform domain.PlatformContext,
		variant domain.BuildVariant,
		opts domain.ResolveOptions,
	) (*domain.Resolution, error)
}

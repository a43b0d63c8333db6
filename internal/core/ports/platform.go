package ports

import (
	"context"

	"go.trai.ch/keel/internal/core/domain"
)

// PlatformProbe discovers the platform context from the environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=platform.go -destination=mocks/mock_platform.go -package=mocks
type PlatformProbe interface {
	// Probe inspects the SDK locations named by the overrides and the process
	// environment. Relative override paths are taken relative to root.
	// Values it cannot discover are taken from fallback.
	Probe(ctx context.Context, root string, overrides domain.Overrides, fallback domain.PlatformFallback) (domain.PlatformContext, error)
}

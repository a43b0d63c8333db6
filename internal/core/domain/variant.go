package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// BuildVariant is a named build mode with its own default policies.
type BuildVariant string

const (
	// VariantDebug is the development build. It is debug-signed and never shrunk.
	VariantDebug BuildVariant = "debug"
	// VariantRelease is the distributable build.
	VariantRelease BuildVariant = "release"
)

// ParseBuildVariant parses a variant name case-insensitively.
func ParseBuildVariant(name string) (BuildVariant, error) {
	switch BuildVariant(strings.ToLower(strings.TrimSpace(name))) {
	case VariantDebug:
		return VariantDebug, nil
	case VariantRelease:
		return VariantRelease, nil
	default:
		return "", zerr.With(
			zerr.With(zerr.Wrap(ErrResolution, "unknown build variant"), "variant", name),
			"remedy", "use one of: debug, release",
		)
	}
}

// String returns the variant name.
func (v BuildVariant) String() string {
	return string(v)
}

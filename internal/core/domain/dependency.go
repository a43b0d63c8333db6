package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// DefaultConfiguration is the dependency configuration used when none is given.
const DefaultConfiguration = "implementation"

// Dependency is a single library coordinate handed to the host build platform.
type Dependency struct {
	Configuration string `json:"configuration" yaml:"configuration"`
	Group         string `json:"group" yaml:"group"`
	Artifact      string `json:"artifact" yaml:"artifact"`
	Version       string `json:"version,omitempty" yaml:"version,omitempty"`
	// Managed marks coordinates the platform provides on its own, such as the language runtime.
	Managed bool `json:"managed,omitempty" yaml:"managed,omitempty"`
}

// ParseDependency parses "group:artifact[:version]", optionally prefixed by a
// configuration name and a space ("testImplementation group:artifact:1.0").
func ParseDependency(coord string) (Dependency, error) {
	raw := strings.TrimSpace(coord)
	configuration := DefaultConfiguration
	if before, after, ok := strings.Cut(raw, " "); ok {
		configuration = before
		raw = strings.TrimSpace(after)
		if !IsIdentifier(configuration) {
			return Dependency{}, invalidCoordinate(coord)
		}
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Dependency{}, invalidCoordinate(coord)
	}
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t") {
			return Dependency{}, invalidCoordinate(coord)
		}
	}

	dep := Dependency{
		Configuration: configuration,
		Group:         parts[0],
		Artifact:      parts[1],
	}
	if len(parts) == 3 {
		dep.Version = parts[2]
	}
	return dep, nil
}

func invalidCoordinate(coord string) error {
	return zerr.With(
		zerr.With(zerr.Wrap(ErrResolution, "invalid dependency coordinate"), "dependency", coord),
		"remedy", "use the form group:artifact[:version]",
	)
}

// Identity returns the group:artifact pair used for deduplication.
func (d Dependency) Identity() string {
	return d.Group + ":" + d.Artifact
}

// Coordinate returns the full group:artifact[:version] string.
func (d Dependency) Coordinate() string {
	if d.Version == "" {
		return d.Identity()
	}
	return d.Identity() + ":" + d.Version
}

// String returns the coordinate prefixed by its configuration.
func (d Dependency) String() string {
	return d.Configuration + " " + d.Coordinate()
}

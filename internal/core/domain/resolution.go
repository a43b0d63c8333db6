package domain

import (
	"maps"
	"slices"
)

// Source identifies where a resolved value came from.
type Source string

// Value sources, in increasing precedence.
const (
	SourceDefault  Source = "default"
	SourceProject  Source = "project"
	SourcePlatform Source = "platform"
	SourceOverride Source = "override"
	SourceFlag     Source = "flag"
	SourcePolicy   Source = "policy"
)

// Origin records the source of a descriptor field.
type Origin struct {
	Source Source
	// Detail is a file:line for overrides, a path for the project file, or a short note.
	Detail string
}

// String renders the origin as "source (detail)".
func (o Origin) String() string {
	if o.Detail == "" {
		return string(o.Source)
	}
	return string(o.Source) + " (" + o.Detail + ")"
}

// Resolution is the result of a successful resolver run.
type Resolution struct {
	Descriptor *BuildDescriptor
	// Warnings are conditions the caller opted into but should still see.
	Warnings []string
	// Provenance maps descriptor field names to their origin.
	Provenance map[string]Origin
}

// Fields returns the provenance field names in sorted order.
func (r *Resolution) Fields() []string {
	return slices.Sorted(maps.Keys(r.Provenance))
}

// ResolveOptions carries caller decisions that are not part of the configuration files.
type ResolveOptions struct {
	// AllowDebugSigning opts a release build into debug key material.
	AllowDebugSigning bool
}

package domain

import "slices"

// PackagingFlag is a release-time packaging transformation.
type PackagingFlag string

const (
	// FlagMinify enables code shrinking and obfuscation.
	FlagMinify PackagingFlag = "minify"
	// FlagShrinkResources removes unused resources. Requires FlagMinify.
	FlagShrinkResources PackagingFlag = "shrinkResources"
)

// PackagingFlags is a set of packaging flags kept in sorted order.
type PackagingFlags []PackagingFlag

// NewPackagingFlags builds a sorted, duplicate-free flag set.
func NewPackagingFlags(flags ...PackagingFlag) PackagingFlags {
	out := make(PackagingFlags, 0, len(flags))
	for _, f := range flags {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return out
}

// Has reports whether the set contains flag.
func (p PackagingFlags) Has(flag PackagingFlag) bool {
	return slices.Contains(p, flag)
}

// ReleasePolicy selects which packaging flags a release build enables.
type ReleasePolicy struct {
	Minify          bool `yaml:"minify"`
	ShrinkResources bool `yaml:"shrinkResources"`
}

// Flags returns the packaging flags enabled by the policy.
func (r ReleasePolicy) Flags() PackagingFlags {
	var flags []PackagingFlag
	if r.Minify {
		flags = append(flags, FlagMinify)
	}
	if r.ShrinkResources {
		flags = append(flags, FlagShrinkResources)
	}
	return NewPackagingFlags(flags...)
}

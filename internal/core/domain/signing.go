package domain

import (
	"maps"
	"slices"
)

// Built-in signing profile names.
const (
	DebugProfileName   = "debug"
	ReleaseProfileName = "release"
)

// Default debug key material, matching what the host build platform generates on first use.
const (
	DebugStoreFile     = "~/.android/debug.keystore"
	DebugKeyAlias      = "androiddebugkey"
	DebugStorePassword = "android"
)

// SigningProfile names a piece of key material. The key itself is never read;
// only its location is forwarded to the host build platform.
type SigningProfile struct {
	Name      string `json:"name" yaml:"name"`
	StoreFile string `json:"storeFile,omitempty" yaml:"storeFile,omitempty"`
	KeyAlias  string `json:"keyAlias,omitempty" yaml:"keyAlias,omitempty"`
	// AliasOf makes this profile reuse the key material of another profile.
	AliasOf string `json:"aliasOf,omitempty" yaml:"aliasOf,omitempty"`
}

// IsAlias reports whether the profile delegates to another profile.
func (p SigningProfile) IsAlias() bool {
	return p.AliasOf != ""
}

// DebugProfile returns the built-in debug profile.
func DebugProfile() SigningProfile {
	return SigningProfile{
		Name:      DebugProfileName,
		StoreFile: DebugStoreFile,
		KeyAlias:  DebugKeyAlias,
	}
}

// SigningProfiles is the profile table keyed by profile name.
type SigningProfiles map[string]SigningProfile

// Clone returns a deep copy of the table.
func (s SigningProfiles) Clone() SigningProfiles {
	return maps.Clone(s)
}

// Names returns the profile names in sorted order.
func (s SigningProfiles) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Follow resolves name through its alias chain and returns the profile that owns
// the key material. It returns false when a profile in the chain is missing or
// the chain loops back on itself.
func (s SigningProfiles) Follow(name string) (SigningProfile, bool) {
	seen := make(map[string]struct{}, len(s))
	current := name
	for {
		if _, ok := seen[current]; ok {
			return SigningProfile{}, false
		}
		seen[current] = struct{}{}

		p, ok := s[current]
		if !ok {
			return SigningProfile{}, false
		}
		if !p.IsAlias() {
			return p, true
		}
		current = p.AliasOf
	}
}

// ResolvedSigning is the signing selection recorded on a descriptor.
type ResolvedSigning struct {
	// Profile is the name of the profile the variant asked for.
	Profile string `json:"profile" yaml:"profile"`
	// KeyOwner is the profile that actually holds the key material.
	KeyOwner  string `json:"keyOwner" yaml:"keyOwner"`
	StoreFile string `json:"storeFile" yaml:"storeFile"`
	KeyAlias  string `json:"keyAlias" yaml:"keyAlias"`
	// DebugKey is set when the key material is the built-in debug key.
	DebugKey bool `json:"debugKey" yaml:"debugKey"`
}

// IsBuiltInDebugKey reports whether storeFile and keyAlias name the built-in debug key.
func IsBuiltInDebugKey(storeFile, keyAlias string) bool {
	return storeFile == DebugStoreFile && (keyAlias == "" || keyAlias == DebugKeyAlias)
}

package domain

import (
	"regexp"
	"slices"

	"go.trai.ch/zerr"
)

var (
	reverseDomainPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*(\.[a-zA-Z][a-zA-Z0-9_]*)+$`)
	identifierPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// IsReverseDomain reports whether id has the form of a reverse-domain identifier.
func IsReverseDomain(id string) bool {
	return reverseDomainPattern.MatchString(id)
}

// IsIdentifier reports whether name can be used as a bare build script identifier.
// Signing profile names and dependency configurations must be identifiers.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// BuildDescriptor is the fully resolved input handed to the host build platform.
// It owns copies of every value and is not modified after resolution.
type BuildDescriptor struct {
	Variant                BuildVariant    `json:"variant" yaml:"variant"`
	SDKRoot                string          `json:"sdkRoot" yaml:"sdkRoot"`
	SDKVersion             string          `json:"sdkVersion,omitempty" yaml:"sdkVersion,omitempty"`
	ApplicationID          string          `json:"applicationId" yaml:"applicationId"`
	Namespace              string          `json:"namespace" yaml:"namespace"`
	CompilePlatformVersion int             `json:"compilePlatformVersion" yaml:"compilePlatformVersion"`
	MinPlatformVersion     int             `json:"minPlatformVersion" yaml:"minPlatformVersion"`
	TargetPlatformVersion  int             `json:"targetPlatformVersion" yaml:"targetPlatformVersion"`
	NDKVersion             string          `json:"ndkVersion,omitempty" yaml:"ndkVersion,omitempty"`
	VersionCode            int             `json:"versionCode" yaml:"versionCode"`
	VersionName            string          `json:"versionName" yaml:"versionName"`
	MultiDexEnabled        bool            `json:"multiDexEnabled" yaml:"multiDexEnabled"`
	Signing                ResolvedSigning `json:"signing" yaml:"signing"`
	PackagingFlags         PackagingFlags  `json:"packagingFlags" yaml:"packagingFlags"`
	JavaCompatibility      string          `json:"javaCompatibility" yaml:"javaCompatibility"`
	KotlinJvmTarget        string          `json:"kotlinJvmTarget" yaml:"kotlinJvmTarget"`
	Plugins                []string        `json:"plugins" yaml:"plugins"`
	FlutterSource          string          `json:"flutterSource" yaml:"flutterSource"`
	Dependencies           []Dependency    `json:"dependencies" yaml:"dependencies"`
}

// Validate checks the structural invariants of a descriptor.
// A descriptor produced by the resolver always passes.
func (d *BuildDescriptor) Validate() error {
	switch {
	case d.Variant != VariantDebug && d.Variant != VariantRelease:
		return invalidField("variant", d.Variant)
	case d.SDKRoot == "":
		return invalidField("sdkRoot", d.SDKRoot)
	case !IsReverseDomain(d.ApplicationID):
		return invalidField("applicationId", d.ApplicationID)
	case !IsReverseDomain(d.Namespace):
		return invalidField("namespace", d.Namespace)
	case d.MinPlatformVersion < MinPlatformFloor:
		return invalidField("minPlatformVersion", d.MinPlatformVersion)
	case d.TargetPlatformVersion < d.MinPlatformVersion:
		return invalidField("targetPlatformVersion", d.TargetPlatformVersion)
	case d.VersionCode < 1:
		return invalidField("versionCode", d.VersionCode)
	case d.VersionName == "":
		return invalidField("versionName", d.VersionName)
	case d.Signing.StoreFile == "" || !IsIdentifier(d.Signing.Profile):
		return invalidField("signing", d.Signing.Profile)
	case d.Variant == VariantDebug && len(d.PackagingFlags) > 0:
		return invalidField("packagingFlags", d.PackagingFlags)
	case d.PackagingFlags.Has(FlagShrinkResources) && !d.PackagingFlags.Has(FlagMinify):
		return invalidField("packagingFlags", d.PackagingFlags)
	}

	seen := make(map[string]struct{}, len(d.Dependencies))
	for _, dep := range d.Dependencies {
		if dep.Group == "" || dep.Artifact == "" || !IsIdentifier(dep.Configuration) {
			return invalidField("dependencies", dep.Coordinate())
		}
		if _, dup := seen[dep.Identity()]; dup {
			return invalidField("dependencies", dep.Identity())
		}
		seen[dep.Identity()] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the descriptor.
func (d *BuildDescriptor) Clone() *BuildDescriptor {
	out := *d
	out.PackagingFlags = slices.Clone(d.PackagingFlags)
	out.Plugins = slices.Clone(d.Plugins)
	out.Dependencies = slices.Clone(d.Dependencies)
	return &out
}

func invalidField(field string, value any) error {
	return zerr.With(zerr.With(zerr.Wrap(ErrInvalidDescriptor, "field failed validation"), "field", field), "value", value)
}

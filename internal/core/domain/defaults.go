package domain

import (
	"maps"
	"slices"
)

// MinPlatformFloor is the lowest platform API level a descriptor may target.
// Native code in the app's plugins does not load below it.
const MinPlatformFloor = 21

// Version defaults applied when no override is present.
const (
	DefaultVersionCode = 1
	DefaultVersionName = "1.0"
)

// DefaultApplicationID is the placeholder id used when neither the project file nor an override sets one.
const DefaultApplicationID = "com.example.app"

// CompileOptions holds the JVM compatibility levels passed to the compilers.
type CompileOptions struct {
	JavaCompatibility string `yaml:"java"`
	KotlinJvmTarget   string `yaml:"kotlinJvmTarget"`
}

// PlatformFallback holds the values used when the platform probe finds no installed SDK platforms.
type PlatformFallback struct {
	CompileVersion int
	TargetVersion  int
	MinVersion     int
	KotlinVersion  string
}

// DefaultSet is the compiled-in configuration that the project file may overlay.
type DefaultSet struct {
	ApplicationID string
	// Namespace defaults to ApplicationID when empty.
	Namespace    string
	Dependencies []string
	// ExtraDependencies are declared by the project and appended after the platform runtime.
	ExtraDependencies []string
	Plugins           []string

	SigningProfiles    SigningProfiles
	ReleaseProfileName string
	AllowDebugSigning  bool

	Release        ReleasePolicy
	CompileOptions CompileOptions
	FlutterSource  string
	Platform       PlatformFallback

	// Overlaid maps field names set by the project file to that file's path.
	Overlaid map[string]string
}

// DefaultDefaults returns the compiled-in DefaultSet.
//
// The release profile is aliased to the debug profile. Release builds therefore
// fail until a real release profile is configured or debug signing is allowed.
func DefaultDefaults() DefaultSet {
	return DefaultSet{
		ApplicationID: DefaultApplicationID,
		Dependencies:  []string{"androidx.multidex:multidex:2.0.1"},
		Plugins:       []string{"com.android.application", "kotlin-android"},
		SigningProfiles: SigningProfiles{
			DebugProfileName: DebugProfile(),
			ReleaseProfileName: {
				Name:    ReleaseProfileName,
				AliasOf: DebugProfileName,
			},
		},
		ReleaseProfileName: ReleaseProfileName,
		Release: ReleasePolicy{
			Minify:          true,
			ShrinkResources: true,
		},
		CompileOptions: CompileOptions{
			JavaCompatibility: "1.8",
			KotlinJvmTarget:   "1.8",
		},
		FlutterSource: "../..",
		Platform: PlatformFallback{
			CompileVersion: 34,
			TargetVersion:  34,
			MinVersion:     16,
			KotlinVersion:  "1.9.22",
		},
	}
}

// Clone returns a copy of the set that shares no slices or maps with d.
func (d DefaultSet) Clone() DefaultSet {
	out := d
	out.Dependencies = slices.Clone(d.Dependencies)
	out.ExtraDependencies = slices.Clone(d.ExtraDependencies)
	out.Plugins = slices.Clone(d.Plugins)
	out.SigningProfiles = d.SigningProfiles.Clone()
	out.Overlaid = maps.Clone(d.Overlaid)
	return out
}

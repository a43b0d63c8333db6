package domain

// RuntimeGroup and RuntimeArtifact identify the platform-managed language runtime.
const (
	RuntimeGroup    = "org.jetbrains.kotlin"
	RuntimeArtifact = "kotlin-stdlib-jdk8"
)

// SDKInfo describes the external SDK named by the sdk.root override.
type SDKInfo struct {
	Root    string
	Exists  bool
	Version string
}

// PlatformContext carries the values discovered from the environment.
// The resolver reads nothing from the filesystem or process environment; all of
// it arrives here.
type PlatformContext struct {
	SDK            SDKInfo
	CompileVersion int
	TargetVersion  int
	// MinVersion is the proposed minimum. It may be below MinPlatformFloor.
	MinVersion int
	NDKVersion string
	// Runtime is the language runtime the platform manages. Zero when unknown.
	Runtime Dependency
	// AndroidSDK is the Android SDK directory the levels were read from, if any.
	AndroidSDK string
}

// RuntimeDependency returns the runtime coordinate for a kotlin version.
func RuntimeDependency(kotlinVersion string) Dependency {
	return Dependency{
		Configuration: DefaultConfiguration,
		Group:         RuntimeGroup,
		Artifact:      RuntimeArtifact,
		Version:       kotlinVersion,
		Managed:       true,
	}
}

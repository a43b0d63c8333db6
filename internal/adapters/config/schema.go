package config

// ProjectFile represents the structure of the keel.yaml project file.
type ProjectFile struct {
	Version        string             `yaml:"version"`
	ApplicationID  string             `yaml:"applicationId"`
	Namespace      string             `yaml:"namespace"`
	Dependencies   []string           `yaml:"dependencies"`
	Plugins        []string           `yaml:"plugins"`
	Signing        *SigningDTO        `yaml:"signing"`
	Release        *ReleaseDTO        `yaml:"release"`
	CompileOptions *CompileOptionsDTO `yaml:"compileOptions"`
	FlutterSource  string             `yaml:"flutterSource"`
}

// SigningDTO represents the signing section of the project file.
type SigningDTO struct {
	ReleaseProfile    string                       `yaml:"releaseProfile"`
	AllowDebugSigning *bool                        `yaml:"allowDebugSigning"`
	Profiles          map[string]SigningProfileDTO `yaml:"profiles"`
}

// SigningProfileDTO represents a single signing profile.
type SigningProfileDTO struct {
	StoreFile string `yaml:"storeFile"`
	KeyAlias  string `yaml:"keyAlias"`
	AliasOf   string `yaml:"aliasOf"`
}

// ReleaseDTO represents the release packaging policy.
type ReleaseDTO struct {
	Minify          bool `yaml:"minify"`
	ShrinkResources bool `yaml:"shrinkResources"`
}

// CompileOptionsDTO represents the compiler compatibility levels.
type CompileOptionsDTO struct {
	Java            string `yaml:"java"`
	KotlinJvmTarget string `yaml:"kotlinJvmTarget"`
}

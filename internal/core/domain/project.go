package domain

// Project is the content of a keel.yaml project file.
// Zero-valued fields leave the compiled-in default in place.
type Project struct {
	// Path is the file the project was read from.
	Path string

	ApplicationID     string
	Namespace         string
	Dependencies      []string
	Plugins           []string
	SigningProfiles   SigningProfiles
	ReleaseProfile    string
	AllowDebugSigning *bool
	Release           *ReleasePolicy
	CompileOptions    CompileOptions
	FlutterSource     string
}

// Apply overlays the project onto defaults and returns the merged set.
// Each field the project sets is recorded in the result's Overlaid map.
// A nil project returns a copy of defaults.
func (p *Project) Apply(defaults DefaultSet) DefaultSet {
	out := defaults.Clone()
	if p == nil {
		return out
	}
	if out.Overlaid == nil {
		out.Overlaid = make(map[string]string)
	}
	mark := func(field string) { out.Overlaid[field] = p.Path }

	if p.ApplicationID != "" {
		out.ApplicationID = p.ApplicationID
		mark("applicationId")
	}
	if p.Namespace != "" {
		out.Namespace = p.Namespace
		mark("namespace")
	}
	if len(p.Dependencies) > 0 {
		out.ExtraDependencies = append(out.ExtraDependencies, p.Dependencies...)
		mark("dependencies")
	}
	if len(p.Plugins) > 0 {
		out.Plugins = append([]string(nil), p.Plugins...)
		mark("plugins")
	}
	if len(p.SigningProfiles) > 0 {
		if out.SigningProfiles == nil {
			out.SigningProfiles = make(SigningProfiles, len(p.SigningProfiles))
		}
		for name, profile := range p.SigningProfiles {
			profile.Name = name
			out.SigningProfiles[name] = profile
		}
		mark("signing")
	}
	if p.ReleaseProfile != "" {
		out.ReleaseProfileName = p.ReleaseProfile
		mark("signing")
	}
	if p.AllowDebugSigning != nil {
		out.AllowDebugSigning = *p.AllowDebugSigning
		mark("signing")
	}
	if p.Release != nil {
		out.Release = *p.Release
		mark("packagingFlags")
	}
	if p.CompileOptions.JavaCompatibility != "" {
		out.CompileOptions.JavaCompatibility = p.CompileOptions.JavaCompatibility
		mark("javaCompatibility")
	}
	if p.CompileOptions.KotlinJvmTarget != "" {
		out.CompileOptions.KotlinJvmTarget = p.CompileOptions.KotlinJvmTarget
		mark("kotlinJvmTarget")
	}
	if p.FlutterSource != "" {
		out.FlutterSource = p.FlutterSource
		mark("flutterSource")
	}
	return out
}

// Package resolver merges overrides, defaults and the platform context into a build descriptor.
package resolver

import (
	"strconv"
	"strings"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver implements ports.DescriptorResolver.
// It holds no state; every call works on its own copies of the inputs.
type Resolver struct{}

// New creates a new Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve merges the inputs into a validated descriptor. The steps run in a
// fixed order and the first violation is returned.
func (r *Resolver) Resolve(
	overrides domain.Overrides,
	defaults domain.DefaultSet,
	platform domain.PlatformContext,
	variant domain.BuildVariant,
	opts domain.ResolveOptions,
) (*domain.Resolution, error) {
	if variant != domain.VariantDebug && variant != domain.VariantRelease {
		return nil, zerr.With(zerr.Wrap(domain.ErrResolution, "unknown build variant"), "variant", string(variant))
	}

	run := &resolution{
		overrides:  overrides,
		defaults:   defaults.Clone(),
		platform:   platform,
		variant:    variant,
		opts:       opts,
		provenance: make(map[string]domain.Origin),
	}

	steps := []func(*domain.BuildDescriptor) error{
		run.sdkRoot,
		run.versionCode,
		run.versionName,
		run.platformVersions,
		run.multiDex,
		run.signing,
		run.packaging,
		run.dependencies,
		run.identity,
		run.compileOptions,
	}

	d := &domain.BuildDescriptor{Variant: variant}
	run.provenance["variant"] = domain.Origin{Source: domain.SourceFlag}
	for _, step := range steps {
		if err := step(d); err != nil {
			return nil, err
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return &domain.Resolution{
		Descriptor: d,
		Warnings:   run.warnings,
		Provenance: run.provenance,
	}, nil
}

type resolution struct {
	overrides domain.Overrides
	defaults  domain.DefaultSet
	platform  domain.PlatformContext
	variant   domain.BuildVariant
	opts      domain.ResolveOptions

	warnings   []string
	provenance map[string]domain.Origin
}

func (r *resolution) sdkRoot(d *domain.BuildDescriptor) error {
	sdk, ok := r.overrides.Lookup(domain.KeySDKRoot)
	if !ok || strings.TrimSpace(sdk.Value) == "" {
		err := zerr.Wrap(domain.ErrMissingSDK, "sdk.root not set; define it in the overrides file")
		err = zerr.With(err, "key", domain.KeySDKRoot)
		return zerr.With(err, "remedy", "add sdk.root=<path to the SDK> to local.properties")
	}

	root := strings.TrimSpace(sdk.Value)
	if !r.platform.SDK.Exists {
		err := zerr.Wrap(domain.ErrMissingSDK, "sdk.root does not exist")
		err = zerr.With(err, "path", root)
		err = zerr.With(err, "key", sdk.Key)
		err = zerr.With(err, "file", sdk.Origin())
		return zerr.With(err, "remedy", "point sdk.root at an installed SDK")
	}

	d.SDKRoot = root
	d.SDKVersion = r.platform.SDK.Version
	r.provenance["sdkRoot"] = overrideOrigin(sdk)
	return nil
}

func (r *resolution) versionCode(d *domain.BuildDescriptor) error {
	v, ok := r.overrides.Lookup(domain.KeyVersionCode)
	if !ok {
		d.VersionCode = domain.DefaultVersionCode
		r.provenance["versionCode"] = domain.Origin{Source: domain.SourceDefault}
		return nil
	}

	code, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil || code < 1 {
		return invalidOverride(v, "version.code must be a positive integer", "set version.code to an integer of 1 or more, or remove it")
	}

	d.VersionCode = code
	r.provenance["versionCode"] = overrideOrigin(v)
	return nil
}

func (r *resolution) versionName(d *domain.BuildDescriptor) error {
	v, ok := r.overrides.Lookup(domain.KeyVersionName)
	if !ok {
		d.VersionName = domain.DefaultVersionName
		r.provenance["versionName"] = domain.Origin{Source: domain.SourceDefault}
		return nil
	}

	name := strings.TrimSpace(v.Value)
	if name == "" {
		return invalidOverride(v, "version.name must not be empty", "set version.name to a non-empty string, or remove it")
	}

	d.VersionName = name
	r.provenance["versionName"] = overrideOrigin(v)
	return nil
}

func (r *resolution) platformVersions(d *domain.BuildDescriptor) error {
	origin := r.platformOrigin()

	d.CompilePlatformVersion = r.platform.CompileVersion
	d.NDKVersion = r.platform.NDKVersion
	r.provenance["compilePlatformVersion"] = origin
	r.provenance["ndkVersion"] = origin

	d.MinPlatformVersion = r.platform.MinVersion
	r.provenance["minPlatformVersion"] = origin
	if d.MinPlatformVersion < domain.MinPlatformFloor {
		d.MinPlatformVersion = domain.MinPlatformFloor
		r.provenance["minPlatformVersion"] = domain.Origin{
			Source: domain.SourcePolicy,
			Detail: "floor " + strconv.Itoa(domain.MinPlatformFloor),
		}
	}

	d.TargetPlatformVersion = r.platform.TargetVersion
	r.provenance["targetPlatformVersion"] = origin
	if d.TargetPlatformVersion < d.MinPlatformVersion {
		d.TargetPlatformVersion = d.MinPlatformVersion
		r.provenance["targetPlatformVersion"] = domain.Origin{
			Source: domain.SourcePolicy,
			Detail: "raised to minPlatformVersion",
		}
	}
	return nil
}

// multiDex is fixed: the multidex library in the default dependencies needs it.
func (r *resolution) multiDex(d *domain.BuildDescriptor) error {
	d.MultiDexEnabled = true
	r.provenance["multiDexEnabled"] = domain.Origin{Source: domain.SourcePolicy}
	return nil
}

func (r *resolution) signing(d *domain.BuildDescriptor) error {
	profiles := r.defaults.SigningProfiles

	if r.variant == domain.VariantDebug {
		owner, ok := profiles.Follow(domain.DebugProfileName)
		if !ok || owner.StoreFile == "" {
			owner = domain.DebugProfile()
		}
		d.Signing = resolvedSigning(domain.DebugProfileName, owner)
		r.provenance["signing"] = r.setOrigin("signing")
		return nil
	}

	name := r.defaults.ReleaseProfileName
	if name == "" {
		name = domain.ReleaseProfileName
	}
	if !domain.IsIdentifier(name) {
		err := zerr.Wrap(domain.ErrResolution, "signing profile name is not a valid identifier")
		err = zerr.With(err, "profile", name)
		return zerr.With(err, "remedy", "use letters, digits and underscores, for example play_upload")
	}
	if _, ok := profiles[name]; !ok {
		return missingProfile(name, "signing profile is not defined")
	}
	owner, ok := profiles.Follow(name)
	if !ok {
		return missingProfile(name, "signing profile alias does not resolve")
	}
	if owner.StoreFile == "" {
		return missingProfile(name, "signing profile has no key store")
	}

	signing := resolvedSigning(name, owner)
	origin := r.setOrigin("signing")

	if signing.DebugKey || owner.Name == domain.DebugProfileName {
		allowed, allowOrigin, err := r.allowDebugSigning()
		if err != nil {
			return err
		}
		if !allowed {
			err := zerr.Wrap(domain.ErrResolution, "release build would be signed with the debug key")
			err = zerr.With(err, "profile", name)
			err = zerr.With(err, "key_owner", owner.Name)
			return zerr.With(err, "remedy", "configure a release signing profile, or set signing.allowDebug=true to accept debug signing")
		}
		r.warnings = append(r.warnings, "release build is signed with the debug key (profile "+name+" uses "+owner.Name+")")
		origin = allowOrigin
	}

	d.Signing = signing
	r.provenance["signing"] = origin
	return nil
}

// allowDebugSigning reports whether release debug signing was opted into, and where.
// The flag wins over the override, which wins over the project file.
func (r *resolution) allowDebugSigning() (bool, domain.Origin, error) {
	if r.opts.AllowDebugSigning {
		return true, domain.Origin{Source: domain.SourceFlag, Detail: "--allow-debug-signing"}, nil
	}
	if v, ok := r.overrides.Lookup(domain.KeyAllowDebugSigning); ok {
		allowed, err := strconv.ParseBool(strings.TrimSpace(v.Value))
		if err != nil {
			return false, domain.Origin{}, invalidOverride(v, "signing.allowDebug must be true or false", "set signing.allowDebug to true or false")
		}
		return allowed, overrideOrigin(v), nil
	}
	return r.defaults.AllowDebugSigning, r.setOrigin("signing"), nil
}

func (r *resolution) packaging(d *domain.BuildDescriptor) error {
	if r.variant == domain.VariantDebug {
		d.PackagingFlags = domain.PackagingFlags{}
		r.provenance["packagingFlags"] = domain.Origin{Source: domain.SourcePolicy, Detail: "debug builds are never shrunk"}
		return nil
	}

	policy := r.defaults.Release
	if policy.ShrinkResources && !policy.Minify {
		err := zerr.Wrap(domain.ErrResolution, "shrinkResources requires minify")
		err = zerr.With(err, "key", "release.shrinkResources")
		return zerr.With(err, "remedy", "enable release.minify or disable release.shrinkResources")
	}

	d.PackagingFlags = policy.Flags()
	r.provenance["packagingFlags"] = r.setOrigin("packagingFlags")
	return nil
}

// dependencies concatenates defaults, the platform runtime and project extras.
// Later entries with an identity already present are dropped.
func (r *resolution) dependencies(d *domain.BuildDescriptor) error {
	deps := make([]domain.Dependency, 0, len(r.defaults.Dependencies)+len(r.defaults.ExtraDependencies)+1)
	seen := make(map[string]struct{})

	add := func(dep domain.Dependency) {
		if _, ok := seen[dep.Identity()]; ok {
			return
		}
		seen[dep.Identity()] = struct{}{}
		deps = append(deps, dep)
	}

	for _, coord := range r.defaults.Dependencies {
		dep, err := domain.ParseDependency(coord)
		if err != nil {
			return err
		}
		add(dep)
	}
	if r.platform.Runtime.Group != "" {
		add(r.platform.Runtime)
	}
	for _, coord := range r.defaults.ExtraDependencies {
		dep, err := domain.ParseDependency(coord)
		if err != nil {
			return zerr.With(err, "file", r.defaults.Overlaid["dependencies"])
		}
		add(dep)
	}

	d.Dependencies = deps
	r.provenance["dependencies"] = r.setOrigin("dependencies")
	return nil
}

func (r *resolution) identity(d *domain.BuildDescriptor) error {
	appID := r.defaults.ApplicationID
	r.provenance["applicationId"] = r.setOrigin("applicationId")
	if v, ok := r.overrides.Lookup(domain.KeyApplicationID); ok {
		appID = strings.TrimSpace(v.Value)
		r.provenance["applicationId"] = overrideOrigin(v)
		if !domain.IsReverseDomain(appID) {
			return invalidOverride(v, "application.id must be a reverse-domain identifier", "use a form like com.example.app")
		}
	}
	if !domain.IsReverseDomain(appID) {
		err := zerr.Wrap(domain.ErrResolution, "applicationId must be a reverse-domain identifier")
		err = zerr.With(err, "value", appID)
		return zerr.With(err, "remedy", "use a form like com.example.app")
	}

	namespace := r.defaults.Namespace
	r.provenance["namespace"] = r.setOrigin("namespace")
	if namespace == "" {
		namespace = appID
		r.provenance["namespace"] = domain.Origin{Source: domain.SourcePolicy, Detail: "same as applicationId"}
	}
	if !domain.IsReverseDomain(namespace) {
		err := zerr.Wrap(domain.ErrResolution, "namespace must be a reverse-domain identifier")
		err = zerr.With(err, "value", namespace)
		return zerr.With(err, "remedy", "use a form like com.example.app")
	}

	d.ApplicationID = appID
	d.Namespace = namespace
	return nil
}

func (r *resolution) compileOptions(d *domain.BuildDescriptor) error {
	d.JavaCompatibility = r.defaults.CompileOptions.JavaCompatibility
	d.KotlinJvmTarget = r.defaults.CompileOptions.KotlinJvmTarget
	d.Plugins = append([]string{}, r.defaults.Plugins...)
	d.FlutterSource = r.defaults.FlutterSource

	for _, field := range []string{"javaCompatibility", "kotlinJvmTarget", "plugins", "flutterSource"} {
		r.provenance[field] = r.setOrigin(field)
	}
	return nil
}

// setOrigin returns the origin of a DefaultSet field: the project file if it set
// the field, the compiled-in defaults otherwise.
func (r *resolution) setOrigin(field string) domain.Origin {
	if path, ok := r.defaults.Overlaid[field]; ok {
		return domain.Origin{Source: domain.SourceProject, Detail: path}
	}
	return domain.Origin{Source: domain.SourceDefault}
}

func (r *resolution) platformOrigin() domain.Origin {
	if r.platform.AndroidSDK == "" {
		return domain.Origin{Source: domain.SourcePlatform, Detail: "fallback"}
	}
	return domain.Origin{Source: domain.SourcePlatform, Detail: r.platform.AndroidSDK}
}

func resolvedSigning(profile string, owner domain.SigningProfile) domain.ResolvedSigning {
	return domain.ResolvedSigning{
		Profile:   profile,
		KeyOwner:  owner.Name,
		StoreFile: owner.StoreFile,
		KeyAlias:  owner.KeyAlias,
		DebugKey:  domain.IsBuiltInDebugKey(owner.StoreFile, owner.KeyAlias),
	}
}

func overrideOrigin(o domain.Override) domain.Origin {
	return domain.Origin{Source: domain.SourceOverride, Detail: o.Origin()}
}

func invalidOverride(o domain.Override, reason, remedy string) error {
	err := zerr.Wrap(domain.ErrResolution, reason)
	err = zerr.With(err, "key", o.Key)
	err = zerr.With(err, "value", o.Value)
	err = zerr.With(err, "file", o.Origin())
	return zerr.With(err, "remedy", remedy)
}

func missingProfile(name, reason string) error {
	err := zerr.Wrap(domain.ErrMissingSigningProfile, reason)
	err = zerr.With(err, "profile", name)
	return zerr.With(err, "remedy", "define the "+name+" profile under signing.profiles in keel.yaml")
}

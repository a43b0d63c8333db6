package resolver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/engine/resolver"
	"go.trai.ch/zerr"
)

func override(key, value string, line int) domain.Override {
	return domain.Override{Key: key, Value: value, File: "local.properties", Line: line}
}

func overrides(entries ...domain.Override) domain.Overrides {
	o := make(domain.Overrides, len(entries))
	for _, e := range entries {
		o[e.Key] = e
	}
	return o
}

func platformContext() domain.PlatformContext {
	return domain.PlatformContext{
		SDK:            domain.SDKInfo{Root: "/opt/flutter", Exists: true, Version: "3.22.0"},
		CompileVersion: 34,
		TargetVersion:  34,
		MinVersion:     16,
		Runtime:        domain.RuntimeDependency("1.9.22"),
	}
}

// releaseDefaults returns defaults with a real release profile.
func releaseDefaults() domain.DefaultSet {
	d := domain.DefaultDefaults()
	d.SigningProfiles[domain.ReleaseProfileName] = domain.SigningProfile{
		Name:      domain.ReleaseProfileName,
		StoreFile: "upload.jks",
		KeyAlias:  "upload",
	}
	return d
}

func resolve(t *testing.T, o domain.Overrides, d domain.DefaultSet, variant domain.BuildVariant) (*domain.Resolution, error) {
	t.Helper()
	return resolver.New().Resolve(o, d, platformContext(), variant, domain.ResolveOptions{})
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	return zErr.Metadata()
}

func TestResolve_Defaults(t *testing.T) {
	res, err := resolve(t, overrides(override("sdk.root", "/opt/flutter", 1)), domain.DefaultDefaults(), domain.VariantDebug)
	require.NoError(t, err)

	d := res.Descriptor
	assert.Equal(t, "/opt/flutter", d.SDKRoot)
	assert.Equal(t, "3.22.0", d.SDKVersion)
	assert.Equal(t, "com.example.app", d.ApplicationID)
	assert.Equal(t, "com.example.app", d.Namespace)
	assert.Equal(t, 1, d.VersionCode)
	assert.Equal(t, "1.0", d.VersionName)
	assert.Equal(t, 34, d.CompilePlatformVersion)
	assert.Equal(t, 21, d.MinPlatformVersion)
	assert.Equal(t, 34, d.TargetPlatformVersion)
	assert.True(t, d.MultiDexEnabled)
	assert.Equal(t, "1.8", d.JavaCompatibility)
	assert.Equal(t, "1.8", d.KotlinJvmTarget)
	assert.Equal(t, []string{"com.android.application", "kotlin-android"}, d.Plugins)
	assert.Equal(t, "../..", d.FlutterSource)
	assert.Equal(t, "debug", d.Signing.Profile)
	assert.True(t, d.Signing.DebugKey)
	assert.Empty(t, d.PackagingFlags)
	assert.Empty(t, res.Warnings)

	assert.Equal(t, domain.Origin{Source: domain.SourceOverride, Detail: "local.properties:1"}, res.Provenance["sdkRoot"])
	assert.Equal(t, domain.SourceDefault, res.Provenance["versionCode"].Source)
	assert.Equal(t, domain.SourcePolicy, res.Provenance["minPlatformVersion"].Source)
}

func TestResolve_MissingSDK(t *testing.T) {
	tests := []struct {
		name      string
		overrides domain.Overrides
		platform  func(*domain.PlatformContext)
		wantMsg   string
	}{
		{
			name:      "no overrides",
			overrides: overrides(),
			wantMsg:   "sdk.root not set; define it in the overrides file",
		},
		{
			name:      "other keys only",
			overrides: overrides(override("version.code", "2", 1), override("version.name", "2.0", 2)),
			wantMsg:   "sdk.root not set; define it in the overrides file",
		},
		{
			name:      "blank value",
			overrides: overrides(override("sdk.root", "  ", 1)),
			wantMsg:   "sdk.root not set; define it in the overrides file",
		},
		{
			name:      "root does not exist",
			overrides: overrides(override("sdk.root", "/missing", 1)),
			platform:  func(p *domain.PlatformContext) { p.SDK = domain.SDKInfo{Root: "/missing"} },
			wantMsg:   "sdk.root does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := platformContext()
			if tt.platform != nil {
				tt.platform(&platform)
			}

			res, err := resolver.New().Resolve(tt.overrides, domain.DefaultDefaults(), platform, domain.VariantDebug, domain.ResolveOptions{})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, domain.ErrMissingSDK))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestResolve_LegacyKeys(t *testing.T) {
	o := overrides(
		override("flutter.sdk", "/opt/flutter", 1),
		override("flutter.versionCode", "7", 2),
		override("flutter.versionName", "1.2.3", 3),
	)

	res, err := resolve(t, o, domain.DefaultDefaults(), domain.VariantDebug)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Descriptor.VersionCode)
	assert.Equal(t, "1.2.3", res.Descriptor.VersionName)
}

func TestResolve_Version(t *testing.T) {
	tests := []struct {
		name     string
		extra    []domain.Override
		wantCode int
		wantName string
		wantKey  string
	}{
		{name: "defaults", wantCode: 1, wantName: "1.0"},
		{
			name:     "explicit",
			extra:    []domain.Override{override("version.code", "42", 2), override("version.name", "4.2.0", 3)},
			wantCode: 42,
			wantName: "4.2.0",
		},
		{
			name:    "non-numeric code",
			extra:   []domain.Override{override("version.code", "abc", 2)},
			wantKey: "version.code",
		},
		{
			name:    "zero code",
			extra:   []domain.Override{override("version.code", "0", 2)},
			wantKey: "version.code",
		},
		{
			name:    "negative code",
			extra:   []domain.Override{override("version.code", "-3", 2)},
			wantKey: "version.code",
		},
		{
			name:    "empty name",
			extra:   []domain.Override{override("version.name", "", 2)},
			wantKey: "version.name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := overrides(append([]domain.Override{override("sdk.root", "/opt/flutter", 1)}, tt.extra...)...)
			res, err := resolve(t, o, domain.DefaultDefaults(), domain.VariantDebug)

			if tt.wantKey != "" {
				require.Error(t, err)
				assert.Nil(t, res)
				assert.True(t, errors.Is(err, domain.ErrResolution))
				md := metadata(t, err)
				assert.Equal(t, tt.wantKey, md["key"])
				assert.Equal(t, "local.properties:2", md["file"])
				assert.NotEmpty(t, md["remedy"])
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, res.Descriptor.VersionCode)
			assert.Equal(t, tt.wantName, res.Descriptor.VersionName)
		})
	}
}

func TestResolve_PlatformFloor(t *testing.T) {
	tests := []struct {
		name       string
		min        int
		target     int
		wantMin    int
		wantTarget int
	}{
		{name: "proposed below floor", min: 16, target: 34, wantMin: 21, wantTarget: 34},
		{name: "proposed at floor", min: 21, target: 34, wantMin: 21, wantTarget: 34},
		{name: "proposed above floor", min: 24, target: 34, wantMin: 24, wantTarget: 34},
		{name: "target below clamped min", min: 16, target: 19, wantMin: 21, wantTarget: 21},
		{name: "zero values", min: 0, target: 0, wantMin: 21, wantTarget: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := platformContext()
			platform.MinVersion = tt.min
			platform.TargetVersion = tt.target

			res, err := resolver.New().Resolve(
				overrides(override("sdk.root", "/opt/flutter", 1)),
				domain.DefaultDefaults(), platform, domain.VariantDebug, domain.ResolveOptions{},
			)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, res.Descriptor.MinPlatformVersion)
			assert.Equal(t, tt.wantTarget, res.Descriptor.TargetPlatformVersion)
			assert.GreaterOrEqual(t, res.Descriptor.MinPlatformVersion, domain.MinPlatformFloor)
			assert.GreaterOrEqual(t, res.Descriptor.TargetPlatformVersion, res.Descriptor.MinPlatformVersion)
		})
	}
}

func TestResolve_Signing(t *testing.T) {
	sdk := override("sdk.root", "/opt/flutter", 1)

	t.Run("debug never needs a profile", func(t *testing.T) {
		d := domain.DefaultDefaults()
		d.SigningProfiles = nil

		res, err := resolve(t, overrides(sdk), d, domain.VariantDebug)
		require.NoError(t, err)
		assert.Equal(t, domain.DebugStoreFile, res.Descriptor.Signing.StoreFile)
		assert.Equal(t, domain.DebugKeyAlias, res.Descriptor.Signing.KeyAlias)
	})

	t.Run("release with real profile", func(t *testing.T) {
		res, err := resolve(t, overrides(sdk), releaseDefaults(), domain.VariantRelease)
		require.NoError(t, err)
		assert.Equal(t, domain.ResolvedSigning{
			Profile:   "release",
			KeyOwner:  "release",
			StoreFile: "upload.jks",
			KeyAlias:  "upload",
		}, res.Descriptor.Signing)
		assert.Empty(t, res.Warnings)
	})

	t.Run("release profile missing", func(t *testing.T) {
		d := domain.DefaultDefaults()
		delete(d.SigningProfiles, domain.ReleaseProfileName)

		res, err := resolve(t, overrides(sdk), d, domain.VariantRelease)
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, domain.ErrMissingSigningProfile))
		assert.Equal(t, "release", metadata(t, err)["profile"])
	})

	t.Run("release profile renamed", func(t *testing.T) {
		d := releaseDefaults()
		d.ReleaseProfileName = "upload"

		_, err := resolve(t, overrides(sdk), d, domain.VariantRelease)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingSigningProfile))
	})

	t.Run("dangling alias", func(t *testing.T) {
		d := domain.DefaultDefaults()
		d.SigningProfiles[domain.ReleaseProfileName] = domain.SigningProfile{Name: "release", AliasOf: "upload"}

		_, err := resolve(t, overrides(sdk), d, domain.VariantRelease)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingSigningProfile))
	})

	t.Run("aliased debug key without opt-in", func(t *testing.T) {
		res, err := resolve(t, overrides(sdk), domain.DefaultDefaults(), domain.VariantRelease)
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, domain.ErrResolution))
		assert.Equal(t, "debug", metadata(t, err)["key_owner"])
	})

	t.Run("aliased debug key with flag", func(t *testing.T) {
		res, err := resolver.New().Resolve(
			overrides(sdk), domain.DefaultDefaults(), platformContext(), domain.VariantRelease,
			domain.ResolveOptions{AllowDebugSigning: true},
		)
		require.NoError(t, err)
		assert.True(t, res.Descriptor.Signing.DebugKey)
		assert.Equal(t, "release", res.Descriptor.Signing.Profile)
		assert.Equal(t, "debug", res.Descriptor.Signing.KeyOwner)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "debug key")
		assert.Equal(t, domain.SourceFlag, res.Provenance["signing"].Source)
	})

	t.Run("aliased debug key with override", func(t *testing.T) {
		o := overrides(sdk, override("signing.allowDebug", "true", 2))

		res, err := resolve(t, o, domain.DefaultDefaults(), domain.VariantRelease)
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, domain.Origin{Source: domain.SourceOverride, Detail: "local.properties:2"}, res.Provenance["signing"])
	})

	t.Run("override can refuse what the project allows", func(t *testing.T) {
		d := domain.DefaultDefaults()
		d.AllowDebugSigning = true
		o := overrides(sdk, override("signing.allowDebug", "false", 2))

		_, err := resolve(t, o, d, domain.VariantRelease)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrResolution))
	})

	t.Run("invalid opt-in value", func(t *testing.T) {
		o := overrides(sdk, override("signing.allowDebug", "maybe", 2))

		_, err := resolve(t, o, domain.DefaultDefaults(), domain.VariantRelease)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrResolution))
		assert.Equal(t, "signing.allowDebug", metadata(t, err)["key"])
	})

	t.Run("redefined debug profile keeps its key store", func(t *testing.T) {
		d := domain.DefaultDefaults()
		d.SigningProfiles[domain.DebugProfileName] = domain.SigningProfile{
			Name:      domain.DebugProfileName,
			StoreFile: "keys/team-debug.jks",
			KeyAlias:  "teamdebug",
		}

		res, err := resolve(t, overrides(sdk), d, domain.VariantDebug)
		require.NoError(t, err)
		assert.Equal(t, "keys/team-debug.jks", res.Descriptor.Signing.StoreFile)
		assert.False(t, res.Descriptor.Signing.DebugKey)

		// A release aliased to that profile still needs the opt-in.
		_, err = resolve(t, overrides(sdk), d, domain.VariantRelease)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrResolution))

		res, err = resolve(t, overrides(sdk, override("signing.allowDebug", "true", 2)), d, domain.VariantRelease)
		require.NoError(t, err)
		assert.False(t, res.Descriptor.Signing.DebugKey)
		assert.Equal(t, "teamdebug", res.Descriptor.Signing.KeyAlias)
		require.Len(t, res.Warnings, 1)
	})

	t.Run("profile name is not an identifier", func(t *testing.T) {
		d := releaseDefaults()
		d.ReleaseProfileName = "play-upload"
		d.SigningProfiles["play-upload"] = domain.SigningProfile{Name: "play-upload", StoreFile: "upload.jks", KeyAlias: "upload"}

		res, err := resolve(t, overrides(sdk), d, domain.VariantRelease)
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, domain.ErrResolution))
		assert.Equal(t, "play-upload", metadata(t, err)["profile"])
	})
}

func TestResolve_PackagingFlags(t *testing.T) {
	sdk := overrides(override("sdk.root", "/opt/flutter", 1))

	tests := []struct {
		name    string
		variant domain.BuildVariant
		policy  domain.ReleasePolicy
		want    domain.PackagingFlags
		wantErr bool
	}{
		{
			name:    "debug ignores policy",
			variant: domain.VariantDebug,
			policy:  domain.ReleasePolicy{Minify: true, ShrinkResources: true},
			want:    domain.PackagingFlags{},
		},
		{
			name:    "release with both",
			variant: domain.VariantRelease,
			policy:  domain.ReleasePolicy{Minify: true, ShrinkResources: true},
			want:    domain.PackagingFlags{domain.FlagMinify, domain.FlagShrinkResources},
		},
		{
			name:    "release minify only",
			variant: domain.VariantRelease,
			policy:  domain.ReleasePolicy{Minify: true},
			want:    domain.PackagingFlags{domain.FlagMinify},
		},
		{
			name:    "release disabled",
			variant: domain.VariantRelease,
			policy:  domain.ReleasePolicy{},
			want:    domain.PackagingFlags{},
		},
		{
			name:    "shrink without minify",
			variant: domain.VariantRelease,
			policy:  domain.ReleasePolicy{ShrinkResources: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := releaseDefaults()
			d.Release = tt.policy

			res, err := resolve(t, sdk, d, tt.variant)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrResolution))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Descriptor.PackagingFlags)
		})
	}
}

func TestResolve_Dependencies(t *testing.T) {
	sdk := overrides(override("sdk.root", "/opt/flutter", 1))

	identities := func(deps []domain.Dependency) []string {
		out := make([]string, 0, len(deps))
		for _, d := range deps {
			out = append(out, d.Identity())
		}
		return out
	}

	t.Run("defaults then runtime", func(t *testing.T) {
		res, err := resolve(t, sdk, domain.DefaultDefaults(), domain.VariantDebug)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"androidx.multidex:multidex",
			"org.jetbrains.kotlin:kotlin-stdlib-jdk8",
		}, identities(res.Descriptor.Dependencies))
	})

	t.Run("explicit runtime is a no-op", func(t *testing.T) {
		without, err := resolve(t, sdk, domain.DefaultDefaults(), domain.VariantDebug)
		require.NoError(t, err)

		d := domain.DefaultDefaults()
		d.ExtraDependencies = []string{"org.jetbrains.kotlin:kotlin-stdlib-jdk8:1.9.22"}
		with, err := resolve(t, sdk, d, domain.VariantDebug)
		require.NoError(t, err)

		assert.ElementsMatch(t, identities(without.Descriptor.Dependencies), identities(with.Descriptor.Dependencies))
		assert.Equal(t, without.Descriptor.Dependencies, with.Descriptor.Dependencies)
	})

	t.Run("first occurrence wins", func(t *testing.T) {
		d := domain.DefaultDefaults()
		d.ExtraDependencies = []string{
			"androidx.multidex:multidex:9.9.9",
			"com.example:extra:1.0",
			"com.example:extra:2.0",
		}

		res, err := resolve(t, sdk, d, domain.VariantDebug)
		require.NoError(t, err)
		deps := res.Descriptor.Dependencies
		require.Len(t, deps, 3)
		assert.Equal(t, "2.0.1", deps[0].Version)
		assert.Equal(t, "com.example:extra:1.0", deps[2].Coordinate())
	})

	t.Run("no runtime known", func(t *testing.T) {
		platform := platformContext()
		platform.Runtime = domain.Dependency{}

		res, err := resolver.New().Resolve(sdk, domain.DefaultDefaults(), platform, domain.VariantDebug, domain.ResolveOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"androidx.multidex:multidex"}, identities(res.Descriptor.Dependencies))
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		d := domain.DefaultDefaults()
		d.ExtraDependencies = []string{"not-a-coordinate"}

		_, err := resolve(t, sdk, d, domain.VariantDebug)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrResolution))
	})
}

func TestResolve_ApplicationID(t *testing.T) {
	sdk := override("sdk.root", "/opt/flutter", 1)

	t.Run("project value", func(t *testing.T) {
		d := domain.DefaultDefaults()
		d.ApplicationID = "com.ciga.process_final"
		d.Overlaid = map[string]string{"applicationId": "keel.yaml"}

		res, err := resolve(t, overrides(sdk), d, domain.VariantDebug)
		require.NoError(t, err)
		assert.Equal(t, "com.ciga.process_final", res.Descriptor.ApplicationID)
		assert.Equal(t, "com.ciga.process_final", res.Descriptor.Namespace)
		assert.Equal(t, domain.Origin{Source: domain.SourceProject, Detail: "keel.yaml"}, res.Provenance["applicationId"])
	})

	t.Run("override wins", func(t *testing.T) {
		d := domain.DefaultDefaults()
		d.Namespace = "com.example.ns"

		res, err := resolve(t, overrides(sdk, override("application.id", "org.sample.app", 2)), d, domain.VariantDebug)
		require.NoError(t, err)
		assert.Equal(t, "org.sample.app", res.Descriptor.ApplicationID)
		assert.Equal(t, "com.example.ns", res.Descriptor.Namespace)
	})

	t.Run("invalid override", func(t *testing.T) {
		_, err := resolve(t, overrides(sdk, override("application.id", "app", 2)), domain.DefaultDefaults(), domain.VariantDebug)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrResolution))
		assert.Equal(t, "application.id", metadata(t, err)["key"])
	})

	t.Run("invalid namespace", func(t *testing.T) {
		d := domain.DefaultDefaults()
		d.Namespace = "bad namespace"

		_, err := resolve(t, overrides(sdk), d, domain.VariantDebug)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrResolution))
	})
}

func TestResolve_UnknownVariant(t *testing.T) {
	_, err := resolve(t, overrides(override("sdk.root", "/opt/flutter", 1)), domain.DefaultDefaults(), "profile")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResolution))
}

func TestResolve_Deterministic(t *testing.T) {
	o := overrides(
		override("sdk.root", "/opt/flutter", 1),
		override("version.code", "3", 2),
	)

	first, err := resolve(t, o, releaseDefaults(), domain.VariantRelease)
	require.NoError(t, err)
	second, err := resolve(t, o, releaseDefaults(), domain.VariantRelease)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	o := overrides(override("sdk.root", "/opt/flutter", 1))
	d := domain.DefaultDefaults()
	d.ExtraDependencies = []string{"com.example:extra:1.0"}
	before := d.Clone()

	res, err := resolve(t, o, d, domain.VariantDebug)
	require.NoError(t, err)

	res.Descriptor.Plugins[0] = "changed"
	res.Descriptor.Dependencies[0].Version = "changed"

	assert.Equal(t, before, d)
	assert.Len(t, o, 1)
}

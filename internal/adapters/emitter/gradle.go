package emitter

import (
	"bytes"
	"strings"
	"text/template"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// FormatGradle selects the Groovy module build script.
const FormatGradle = "gradle"

var groovyQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

var gradleTemplate = template.Must(template.New("build.gradle").Funcs(template.FuncMap{
	"quote": func(s string) string {
		return "'" + groovyQuoter.Replace(s) + "'"
	},
	"javaVersion": func(v string) string {
		return "JavaVersion.VERSION_" + strings.ReplaceAll(v, ".", "_")
	},
}).Parse(`// Generated by keel. Do not edit.
// variant: {{.Variant}}

{{range .Plugins}}apply plugin: {{quote .}}
{{end}}
android {
    namespace {{quote .Namespace}}
    compileSdkVersion {{.CompilePlatformVersion}}
{{if .NDKVersion}}    ndkVersion {{quote .NDKVersion}}
{{end}}
    compileOptions {
        sourceCompatibility {{javaVersion .JavaCompatibility}}
        targetCompatibility {{javaVersion .JavaCompatibility}}
    }

    kotlinOptions {
        jvmTarget = {{quote .KotlinJvmTarget}}
    }

    defaultConfig {
        applicationId {{quote .ApplicationID}}
        minSdkVersion {{.MinPlatformVersion}}
        targetSdkVersion {{.TargetPlatformVersion}}
        versionCode {{.VersionCode}}
        versionName {{quote .VersionName}}
        multiDexEnabled {{.MultiDexEnabled}}
    }
{{if .CustomSigning}}
    signingConfigs {
        {{.SigningConfig}} {
            storeFile file({{quote .Signing.StoreFile}})
            keyAlias {{quote .Signing.KeyAlias}}
        }
    }
{{end}}
    buildTypes {
        {{.Variant}} {
            signingConfig signingConfigs.{{.SigningConfig}}
            minifyEnabled {{.Minify}}
            shrinkResources {{.ShrinkResources}}
        }
    }
}

flutter {
    source {{quote .FlutterSource}}
}

dependencies {
{{range .Dependencies}}    {{.Configuration}} {{quote .Coordinate}}
{{end}}}
`))

// gradleView is the template input.
type gradleView struct {
	domain.BuildDescriptor
	SigningConfig   string
	CustomSigning   bool
	Minify          bool
	ShrinkResources bool
}

// GradleEmitter renders a descriptor as a Groovy build.gradle module script.
type GradleEmitter struct{}

// NewGradleEmitter creates a new GradleEmitter.
func NewGradleEmitter() *GradleEmitter {
	return &GradleEmitter{}
}

// Format returns the format name.
func (e *GradleEmitter) Format() string {
	return FormatGradle
}

// Emit renders the descriptor.
func (e *GradleEmitter) Emit(descriptor *domain.BuildDescriptor) ([]byte, error) {
	if err := validate(descriptor); err != nil {
		return nil, err
	}

	view := gradleView{
		BuildDescriptor: *descriptor,
		SigningConfig:   domain.DebugProfileName,
		Minify:          descriptor.PackagingFlags.Has(domain.FlagMinify),
		ShrinkResources: descriptor.PackagingFlags.Has(domain.FlagShrinkResources),
	}
	if !domain.IsBuiltInDebugKey(descriptor.Signing.StoreFile, descriptor.Signing.KeyAlias) {
		view.SigningConfig = descriptor.Signing.Profile
		view.CustomSigning = true
	}

	var buf bytes.Buffer
	if err := gradleTemplate.Execute(&buf, view); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "format", FormatGradle)
	}
	return buf.Bytes(), nil
}

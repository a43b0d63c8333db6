package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"

	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// supportedVersion is the only project file schema version understood.
const supportedVersion = "1"

// ProjectLoader implements ports.ProjectLoader using a YAML file.
type ProjectLoader struct {
	fs     FileSystem
	Logger ports.Logger
}

// NewProjectLoader creates a new ProjectLoader with the given filesystem and logger.
func NewProjectLoader(fsys FileSystem, logger ports.Logger) *ProjectLoader {
	return &ProjectLoader{fs: fsys, Logger: logger}
}

// Load reads the project file at path. Returns nil, nil if it does not exist.
func (l *ProjectLoader) Load(path string) (*domain.Project, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "file", path)
	}

	var file ProjectFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "file", path)
	}

	switch file.Version {
	case supportedVersion:
	case "":
		l.Logger.Warn(path + ": version not set, assuming " + supportedVersion)
	default:
		err := zerr.Wrap(domain.ErrUnsupportedProjectVersion, "cannot read project file")
		err = zerr.With(err, "file", path)
		return nil, zerr.With(err, "version", file.Version)
	}

	return file.toDomain(path), nil
}

func (f *ProjectFile) toDomain(path string) *domain.Project {
	p := &domain.Project{
		Path:          path,
		ApplicationID: f.ApplicationID,
		Namespace:     f.Namespace,
		Dependencies:  f.Dependencies,
		Plugins:       f.Plugins,
		FlutterSource: f.FlutterSource,
	}

	if f.Signing != nil {
		p.ReleaseProfile = f.Signing.ReleaseProfile
		p.AllowDebugSigning = f.Signing.AllowDebugSigning
		if len(f.Signing.Profiles) > 0 {
			p.SigningProfiles = make(domain.SigningProfiles, len(f.Signing.Profiles))
			for name, dto := range f.Signing.Profiles {
				p.SigningProfiles[name] = domain.SigningProfile{
					Name:      name,
					StoreFile: dto.StoreFile,
					KeyAlias:  dto.KeyAlias,
					AliasOf:   dto.AliasOf,
				}
			}
		}
	}

	if f.Release != nil {
		p.Release = &domain.ReleasePolicy{
			Minify:          f.Release.Minify,
			ShrinkResources: f.Release.ShrinkResources,
		}
	}

	if f.CompileOptions != nil {
		p.CompileOptions = domain.CompileOptions{
			JavaCompatibility: f.CompileOptions.Java,
			KotlinJvmTarget:   f.CompileOptions.KotlinJvmTarget,
		}
	}

	return p
}

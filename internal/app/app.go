// Package app implements the application layer for keel.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/keel/internal/adapters/telemetry" //nolint:depguard // Tracer is built per command in the app layer
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

// Default output formats per operation.
const (
	DefaultResolveFormat = "yaml"
	DefaultEmitFormat    = "gradle"
)

// App represents the main application logic.
type App struct {
	configSource  ports.ConfigSource
	projectLoader ports.ProjectLoader
	probe         ports.PlatformProbe
	resolver      ports.DescriptorResolver
	emitters      ports.EmitterRegistry
	store         ports.DescriptorStore
	hasher        ports.Hasher
	writer        ports.Writer
	watcher       ports.Watcher
	logger        ports.Logger

	stdout    io.Writer
	now       func() time.Time
	newTracer func(trace bool) ports.Tracer
}

// New creates a new App instance.
func New(
	source ports.ConfigSource,
	projectLoader ports.ProjectLoader,
	probe ports.PlatformProbe,
	resolver ports.DescriptorResolver,
	emitters ports.EmitterRegistry,
	store ports.DescriptorStore,
	hasher ports.Hasher,
	writer ports.Writer,
	watcher ports.Watcher,
	log ports.Logger,
) *App {
	a := &App{
		configSource:  source,
		projectLoader: projectLoader,
		probe:         probe,
		resolver:      resolver,
		emitters:      emitters,
		store:         store,
		hasher:        hasher,
		writer:        writer,
		watcher:       watcher,
		logger:        log,
		stdout:        os.Stdout,
		now:           time.Now,
	}
	a.newTracer = a.defaultTracer
	return a
}

// WithStdout sets the writer used for descriptors printed to standard output.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithClock sets the clock used to timestamp store records.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithTracerFactory replaces the tracer construction. Used for testing.
func (a *App) WithTracerFactory(fn func(trace bool) ports.Tracer) *App {
	a.newTracer = fn
	return a
}

func (a *App) defaultTracer(trace bool) ports.Tracer {
	if !trace {
		return telemetry.NewNoOpTracer()
	}
	return telemetry.NewOTelTracer("keel", telemetry.NewLogBridge(a.logger))
}

// Options configures a single command run.
type Options struct {
	// Root is the project directory. Relative paths below are resolved against it.
	Root string
	// ProjectFile is the keel.yaml path. Empty means Root/keel.yaml.
	ProjectFile string
	// OverrideFiles are the override files in precedence order. Empty means
	// local.properties then keel.local.properties.
	OverrideFiles []string
	// Variant is the build variant name.
	Variant string
	// Format selects the emitter. Empty means the operation's default.
	Format string
	// Output is the destination file. "-" writes to standard output.
	Output string
	// AllowDebugSigning opts a release build into debug key material.
	AllowDebugSigning bool
	// Trace reports span timings through the logger.
	Trace bool
}

func (o Options) root() string {
	if o.Root == "" {
		return "."
	}
	return o.Root
}

func (o Options) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(o.root(), p)
}

func (o Options) projectFile() string {
	if o.ProjectFile == "" {
		return o.path(domain.ProjectFileName)
	}
	return o.path(o.ProjectFile)
}

func (o Options) overrideFiles() []string {
	files := o.OverrideFiles
	if len(files) == 0 {
		files = domain.DefaultOverrideFiles()
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, o.path(f))
	}
	return paths
}

// WatchedFiles returns the files whose changes trigger a re-emit.
func (o Options) WatchedFiles() []string {
	return append(o.overrideFiles(), o.projectFile())
}

func (o Options) format(fallback string) string {
	if o.Format == "" {
		return fallback
	}
	return o.Format
}

// resolve runs load, probe and resolve, and logs the resolution warnings.
func (a *App) resolve(ctx context.Context, tracer ports.Tracer, opts Options) (*domain.Resolution, error) {
	ctx, span := tracer.Start(ctx, "resolve", ports.WithAttribute("variant", opts.Variant))
	defer span.End()

	res, err := a.runResolve(ctx, tracer, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("warnings", len(res.Warnings))
	for _, w := range res.Warnings {
		a.logger.Warn(w)
	}
	return res, nil
}

func (a *App) runResolve(ctx context.Context, tracer ports.Tracer, opts Options) (*domain.Resolution, error) {
	variant, err := domain.ParseBuildVariant(opts.Variant)
	if err != nil {
		return nil, err
	}

	_, span := tracer.Start(ctx, "load overrides")
	overrides, err := a.configSource.Load(opts.overrideFiles())
	span.SetAttribute("keys", len(overrides))
	span.End()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load overrides")
	}

	_, span = tracer.Start(ctx, "load project")
	project, err := a.projectLoader.Load(opts.projectFile())
	span.End()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load project file")
	}
	defaults := project.Apply(domain.DefaultDefaults())

	probeCtx, span := tracer.Start(ctx, "probe platform")
	platform, err := a.probe.Probe(probeCtx, opts.root(), overrides, defaults.Platform)
	span.End()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to probe platform")
	}

	return a.resolver.Resolve(overrides, defaults, platform, variant, domain.ResolveOptions{
		AllowDebugSigning: opts.AllowDebugSigning,
	})
}

// render serializes the descriptor with the selected emitter.
func (a *App) render(ctx context.Context, tracer ports.Tracer, format string, d *domain.BuildDescriptor) ([]byte, error) {
	_, span := tracer.Start(ctx, "emit", ports.WithAttribute("format", format))
	defer span.End()

	emitter, err := a.emitters.Get(format)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	data, err := emitter.Emit(d)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("bytes", len(data))
	return data, nil
}

func (a *App) startTracer(opts Options) (ports.Tracer, func()) {
	tracer := a.newTracer(opts.Trace)
	return tracer, func() {
		_ = tracer.Shutdown(context.Background())
	}
}

// Resolve resolves the descriptor and prints it, YAML by default, to standard
// output or to opts.Output. Nothing is recorded in the store.
func (a *App) Resolve(ctx context.Context, opts Options) error {
	tracer, done := a.startTracer(opts)
	defer done()

	res, err := a.resolve(ctx, tracer, opts)
	if err != nil {
		return err
	}

	data, err := a.render(ctx, tracer, opts.format(DefaultResolveFormat), res.Descriptor)
	if err != nil {
		return err
	}

	if opts.Output == "" || opts.Output == "-" {
		_, err = a.stdout.Write(data)
		return err
	}
	return a.writer.WriteFile(opts.path(opts.Output), data)
}

// Emit resolves the descriptor, writes it atomically and records its
// fingerprint in the store.
func (a *App) Emit(ctx context.Context, opts Options) error {
	tracer, done := a.startTracer(opts)
	defer done()

	return a.emit(ctx, tracer, opts)
}

func (a *App) emit(ctx context.Context, tracer ports.Tracer, opts Options) error {
	res, err := a.resolve(ctx, tracer, opts)
	if err != nil {
		return err
	}

	format := opts.format(DefaultEmitFormat)
	data, err := a.render(ctx, tracer, format, res.Descriptor)
	if err != nil {
		return err
	}

	output := opts.Output
	if output == "" {
		output = domain.DefaultOutputFileName
	}
	if output == "-" {
		_, err = a.stdout.Write(data)
		return err
	}

	_, span := tracer.Start(ctx, "write", ports.WithAttribute("path", output))
	defer span.End()

	if err := a.writer.WriteFile(opts.path(output), data); err != nil {
		span.RecordError(err)
		return err
	}

	record := domain.DescriptorRecord{
		Variant:     res.Descriptor.Variant,
		Format:      format,
		OutputPath:  output,
		Fingerprint: a.hasher.Sum(data),
		Descriptor:  res.Descriptor,
		Timestamp:   a.now(),
	}
	if err := a.store.Put(opts.root(), record); err != nil {
		span.RecordError(err)
		return err
	}

	a.logger.Info(fmt.Sprintf("wrote %s (%s, %s)", output, record.Variant, format))
	return nil
}

// Clean removes the descriptor store.
func (a *App) Clean(_ context.Context, opts Options) error {
	a.logger.Info("removing descriptor store...")
	if err := a.store.Clean(opts.root()); err != nil {
		return err
	}
	a.logger.Info("removed descriptor store")
	return nil
}

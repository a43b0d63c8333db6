package app

import (
	"context"
	"errors"
	"io/fs"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/ui/style"
	"go.trai.ch/zerr"
)

// Check verifies that the emitted descriptor on disk matches a fresh
// resolution. Any difference is reported as ErrDescriptorDrift.
func (a *App) Check(ctx context.Context, opts Options) error {
	tracer, done := a.startTracer(opts)
	defer done()

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
	if output == "" || output == "-" {
		output = domain.DefaultOutputFileName
	}

	_, span := tracer.Start(ctx, "check", ports.WithAttribute("path", output))
	defer span.End()

	onDisk, err := a.hasher.SumFile(opts.path(output))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return driftError(output, "descriptor has not been emitted")
		}
		span.RecordError(err)
		return err
	}

	if onDisk == a.hasher.Sum(data) {
		a.logger.Info(style.Check + " " + output + " is up to date")
		return nil
	}

	record, err := a.store.Get(opts.root(), res.Descriptor.Variant, format, output)
	if err != nil {
		return err
	}

	switch {
	case record == nil || record.Descriptor == nil:
		return driftError(output, "descriptor differs from a fresh resolution")
	case record.Fingerprint != onDisk:
		return driftError(output, "descriptor was modified after it was emitted")
	}

	diff := cmp.Diff(record.Descriptor, res.Descriptor, cmpopts.EquateEmpty())
	if diff == "" {
		return driftError(output, "descriptor output changed without a configuration change")
	}
	return driftError(output, "configuration changed since the last emit (-emitted +resolved):\n"+diff)
}

func driftError(output, reason string) error {
	err := zerr.Wrap(domain.ErrDescriptorDrift, reason)
	err = zerr.With(err, "path", output)
	return zerr.With(err, "remedy", "run keel emit to regenerate it")
}

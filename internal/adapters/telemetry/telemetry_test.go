package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/adapters/telemetry"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_LogsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var lines []string
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) { lines = append(lines, msg) })

	tracer := telemetry.NewOTelTracer("keel", telemetry.NewLogBridge(log))

	_, span := tracer.Start(context.Background(), "resolve", ports.WithAttribute("variant", "release"))
	span.SetAttribute("warnings", 1)
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "trace: resolve "))
	assert.Contains(t, lines[0], "variant=release")
	assert.Contains(t, lines[0], "warnings=1")
}

func TestOTelTracer_FailedSpanWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var warned string
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) { warned = msg })

	tracer := telemetry.NewOTelTracer("keel", telemetry.NewLogBridge(log))

	_, span := tracer.Start(context.Background(), "emit")
	span.RecordError(errors.New("disk full"))
	span.RecordError(nil)
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))
	assert.Contains(t, warned, "trace: emit ")
	assert.Contains(t, warned, "failed: disk full")
}

func TestOTelTracer_WithoutProcessors(t *testing.T) {
	tracer := telemetry.NewOTelTracer("keel")
	_, span := tracer.Start(context.Background(), "check")
	span.SetAttribute("paths", []string{"a", "b"})
	span.SetAttribute("other", struct{}{})
	span.End()
	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := context.Background()
	got, span := tracer.Start(ctx, "resolve")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
	assert.NoError(t, tracer.Shutdown(ctx))
}

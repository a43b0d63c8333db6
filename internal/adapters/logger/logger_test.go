package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/keel/internal/adapters/logger"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a plain logger writing to a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("resolved release descriptor")
	lg.Warn("release build is signed with the debug key")

	assert.Equal(t,
		"resolved release descriptor\n! release build is signed with the debug key\n",
		buf.String(),
	)
}

func TestLogger_Error_ResolutionFailure(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(
		zerr.With(
			zerr.Wrap(domain.ErrResolution, "version.code must be a positive integer"),
			"key", "version.code",
		),
		"file", "keel.local.properties:3",
	)
	lg.Error(zerr.Wrap(err, "resolve failed"))

	g := goldie.New(t)
	g.Assert(t, "error_resolution", buf.Bytes())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.With(zerr.Wrap(errors.New("no such file"), "failed to read config file"), "path", "keel.yaml"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "failed to read config file", record["msg"])
	assert.Equal(t, "keel.yaml", record["path"])
	assert.Equal(t, "failed to read config file: no such file", record["error"])
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetJSON(true)
	lg.Info("json line")
	assert.Contains(t, buf.String(), `"msg":"json line"`)

	buf.Reset()
	lg.SetJSON(false)
	lg.Info("pretty line")
	assert.Equal(t, "pretty line\n", buf.String())
}

func TestLogger_SetColor(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.SetColor(false)
	lg.Warn("plain")
	assert.Equal(t, "! plain\n", buf.String())
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, buf := newTestLogger(t)

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			lg.Info("concurrent")
		})
	}
	wg.Go(func() { lg.SetOutput(buf) })
	wg.Wait()
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}).
		WithAttrs([]slog.Attr{slog.String("variant", "release")}).
		WithGroup("emit")
	lg := slog.New(h)

	lg.Info("written", "format", "gradle")
	lg.Debug("filtered")

	assert.Equal(t, "written variant=release emit.format=gradle\n", buf.String())
}

func TestPrettyHandler_NestedGroups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).WithGroup("app").WithGroup("check")

	lg.Info("drift", "path", "build.gradle")

	assert.Equal(t, "drift app.check.path=build.gradle\n", buf.String())
}

func TestPrettyHandler_MultilineMessage(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil))

	lg.Warn("configuration changed:\n-  VersionCode: 1\n+  VersionCode: 2", "path", "build.gradle")

	assert.Equal(t, "! configuration changed: path=build.gradle\n-  VersionCode: 1\n+  VersionCode: 2\n", buf.String())
}

func TestPrettyHandler_LevelFollowsLeveler(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	level := &slog.LevelVar{}
	level.Set(slog.LevelWarn)

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}))

	lg.Info("hidden")
	level.Set(slog.LevelInfo)
	lg.Info("shown")

	assert.Equal(t, "shown\n", buf.String())
}

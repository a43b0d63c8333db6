package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/keel/internal/app"
	"go.trai.ch/keel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newComponents(t *testing.T) (*app.Components, *mocks.MockLogger, *mocks.MockDescriptorStore) {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	store := mocks.NewMockDescriptorStore(ctrl)
	a := app.New(
		mocks.NewMockConfigSource(ctrl),
		mocks.NewMockProjectLoader(ctrl),
		mocks.NewMockPlatformProbe(ctrl),
		mocks.NewMockDescriptorResolver(ctrl),
		mocks.NewMockEmitterRegistry(ctrl),
		store,
		mocks.NewMockHasher(ctrl),
		mocks.NewMockWriter(ctrl),
		mocks.NewMockWatcher(ctrl),
		log,
	)
	return &app.Components{App: a, Logger: log}, log, store
}

func TestRun_Success(t *testing.T) {
	components, _, _ := newComponents(t)
	provider := func(context.Context) (*app.Components, error) { return components, nil }

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "keel version")
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_ExecutionError(t *testing.T) {
	components, log, store := newComponents(t)
	provider := func(context.Context) (*app.Components, error) { return components, nil }

	cleanErr := errors.New("permission denied")
	log.EXPECT().Info(gomock.Any())
	store.EXPECT().Clean(".").Return(cleanErr)
	log.EXPECT().Error(cleanErr)

	exitCode := run(context.Background(), []string{"clean"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

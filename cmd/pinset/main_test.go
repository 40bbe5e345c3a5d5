package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/pinset/pinset/internal/app"
	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports"
	"github.com/pinset/pinset/internal/core/ports/mocks"
	"github.com/pinset/pinset/internal/engine/resolver"
)

func testComponents(t *testing.T, parser *mocks.MockManifestParser, logger ports.Logger) *app.Components {
	t.Helper()

	ctrl := gomock.NewController(t)
	index := mocks.NewMockPackageIndex(ctrl)
	store := mocks.NewMockLockStore(ctrl)

	settings := &domain.Settings{IndexURL: "https://pypi.org"}
	registry := func(string) (ports.Reporter, error) { return mocks.NewMockReporter(ctrl), nil }
	a := app.New([]ports.ManifestParser{parser}, resolver.New(index, logger, settings), store, registry, logger, settings)

	return app.NewComponents(a, logger)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	provider := func(context.Context) (*app.Components, func(), error) {
		return testComponents(t, mocks.NewMockManifestParser(ctrl), mockLogger), func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stderr.String())
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"check"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	// The execution error is reported through the logger
	mockLogger.EXPECT().Error(gomock.Any())

	parser := mocks.NewMockManifestParser(ctrl)
	parser.EXPECT().CanParse(gomock.Any()).Return(false)

	provider := func(context.Context) (*app.Components, func(), error) {
		return testComponents(t, parser, mockLogger), func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"check", "-f", "setup.cfg"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	provider := func(ctx context.Context) (*app.Components, func(), error) {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"check"}, io.Discard, provider)
	}()

	// Wait a bit to ensure run() reaches the provider
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}

package logger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texsync/internal/logger"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config *logger.Config
	}{
		{
			name:   "empty config gets defaults",
			config: &logger.Config{},
		},
		{
			name: "json encoding",
			config: &logger.Config{
				Level:    logger.DebugLevel,
				Encoding: "json",
			},
		},
		{
			name: "development console with color",
			config: &logger.Config{
				Level:       logger.InfoLevel,
				Development: true,
				EnableColor: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, err := logger.New(tt.config)
			require.NoError(t, err)
			require.NotNil(t, log)

			// Exercise the full interface; none of these may panic.
			log.Debug("debug message", "key", "value")
			log.Info("info message", "count", 42)
			log.Warn("warn message")
			log.Error("error message", "error", errors.New("boom"))
		})
	}
}

func TestLogger_With(t *testing.T) {
	t.Parallel()

	log, err := logger.New(&logger.Config{})
	require.NoError(t, err)

	child := log.With("run_id", "abc").
		WithComponent("uploader").
		WithDuration(time.Second).
		WithError(errors.New("boom"))
	require.NotNil(t, child)
	assert.NotSame(t, log, child)

	child.Info("derived logger works")
}

func TestNoOp(t *testing.T) {
	t.Parallel()

	log := logger.NewNoOp()
	log.Info("ignored", "odd-number-of", "fields", "dangling")
	assert.Same(t, log, log.WithComponent("fetcher"))
}

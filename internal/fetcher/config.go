package fetcher

import (
	"time"

	"texsync/internal/constants"
)

// Config holds fetch-stage configuration.
type Config struct {
	// RenderTimeout bounds the wait for Overleaf's server-side LaTeX
	// compilation. The dominant source of flakiness, so it is configurable.
	RenderTimeout time.Duration
	// Headless controls browser visibility; visible mode is for debugging.
	Headless bool
	// TempDir is the parent directory for the ephemeral download area.
	// Empty means the system default.
	TempDir string
}

// WithDefaults returns a copy of the config with default values applied for
// zero-value fields.
func (c Config) WithDefaults() Config {
	if c.RenderTimeout <= 0 {
		c.RenderTimeout = constants.DefaultRenderTimeout
	}
	return c
}

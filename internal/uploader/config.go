package uploader

import (
	"time"

	"texsync/internal/constants"
)

// Credentials are the destination-site login credentials, used only when the
// persisted session no longer authenticates.
type Credentials struct {
	// Username is the account email.
	Username string
	// Password is the account password.
	Password string
}

// Config holds upload-stage configuration.
type Config struct {
	// DestinationURL is the SharePoint document library to upload into.
	DestinationURL string
	// UploadTimeout bounds the wait for the "Uploaded" confirmation marker.
	UploadTimeout time.Duration
	// ActionTimeout bounds individual page actions such as finding the
	// upload control.
	ActionTimeout time.Duration
	// Headless controls browser visibility; visible mode is for debugging.
	Headless bool
	// TempDir is the parent directory for the ephemeral upload staging area.
	// Empty means the system default.
	TempDir string
}

// WithDefaults returns a copy of the config with default values applied for
// zero-value fields.
func (c Config) WithDefaults() Config {
	if c.UploadTimeout <= 0 {
		c.UploadTimeout = constants.DefaultUploadTimeout
	}
	if c.ActionTimeout <= 0 {
		c.ActionTimeout = constants.DefaultActionTimeout
	}
	return c
}

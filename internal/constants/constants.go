// Package constants provides shared constants used across the texsync application.
package constants

import "time"

// Browser/workflow constants.
const (
	// DefaultRenderTimeout is how long to wait for Overleaf's server-side LaTeX
	// compilation to finish, signalled by the render canvas appearing. This is
	// deliberately much longer than a normal page-load timeout.
	DefaultRenderTimeout = 61 * time.Second

	// DefaultNavigationTimeout is the timeout for plain page navigations.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultUploadTimeout is how long to wait for SharePoint's "Uploaded"
	// confirmation marker after supplying the file.
	DefaultUploadTimeout = 60 * time.Second

	// DefaultActionTimeout is the timeout for individual page actions
	// (clicks, fills, presence checks).
	DefaultActionTimeout = 10 * time.Second
)

// HTTP server constants (httpd mode).
const (
	// DefaultServerAddress is the default HTTP server address.
	DefaultServerAddress = ":8085"

	// DefaultServerReadTimeout is the default HTTP server read timeout.
	DefaultServerReadTimeout = 15 * time.Second

	// DefaultServerWriteTimeout is the default HTTP server write timeout.
	// Sync runs are slow (two browser sessions), so this is generous.
	DefaultServerWriteTimeout = 5 * time.Minute

	// DefaultServerIdleTimeout is the default HTTP server idle timeout.
	DefaultServerIdleTimeout = 60 * time.Second
)

// General constants.
const (
	// DefaultShutdownTimeout is the maximum time to wait for graceful shutdown.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultCookiesFile is the default cookie store location.
	DefaultCookiesFile = "cookies.json"

	// DefaultAppName is the application name.
	DefaultAppName = "texsync"

	// DefaultAppVersion is the application version.
	DefaultAppVersion = "1.0.0"
)

// ValidLogLevels defines the valid logging levels.
var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

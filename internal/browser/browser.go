// Package browser models the small set of browser capabilities this workflow
// needs, so the automation engine stays swappable and mockable in tests.
package browser

import (
	"context"
	"time"

	"texsync/internal/session"
)

// LaunchOptions controls how a browser session is started.
type LaunchOptions struct {
	// Headless runs the browser without a visible window. Visible mode is a
	// debugging aid only.
	Headless bool
}

// Launcher starts isolated browser sessions. Each pipeline stage owns exactly
// one session for its entire duration.
type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) (Session, error)
}

// Session is a browser instance plus a single context. Cookies added via
// AddCookies must be injected before the first navigation.
type Session interface {
	// AddCookies injects cookies into the session context.
	AddCookies(cookies []session.Cookie) error
	// Cookies returns the session context's current cookie set.
	Cookies() ([]session.Cookie, error)
	// NewPage opens a page in the session context.
	NewPage() (Page, error)
	// Close tears down the page, context, and browser. Safe to defer; must be
	// called on all exit paths.
	Close() error
}

// Page exposes the page operations the fetch and upload flows use. Selectors
// are Playwright selector strings; the workflow uses XPath throughout.
type Page interface {
	// Navigate opens the URL and waits for the load event only. The share
	// page keeps polling in the background, so callers never wait for
	// network-idle.
	Navigate(url string) error
	// WaitForSelector blocks until the selector is visible or the timeout
	// elapses.
	WaitForSelector(selector string, timeout time.Duration) error
	// Visible reports whether at least one element matches the selector.
	Visible(selector string) (bool, error)
	// InputValue returns the current value of the first matching input.
	InputValue(selector string) (string, error)
	// Click clicks the first element matching the selector.
	Click(selector string) error
	// Fill sets the value of the first matching input.
	Fill(selector string, value string) error
	// ExpectDownload registers interest in the next download before running
	// trigger, so the download cannot start before the listener attaches.
	ExpectDownload(trigger func() error) (Download, error)
	// ExpectFileChooser registers a file-chooser listener before running
	// trigger, then supplies path to the intercepted chooser.
	ExpectFileChooser(trigger func() error, path string) error
}

// Download is a captured browser download.
type Download interface {
	// SuggestedFilename is the filename offered by the download event,
	// not derived from the URL.
	SuggestedFilename() string
	// SaveAs writes the downloaded artifact to path.
	SaveAs(path string) error
}

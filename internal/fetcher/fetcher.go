// Package fetcher retrieves the rendered PDF from an Overleaf read-only share
// link by driving a headless browser through the share page's export control.
package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"texsync/internal/browser"
	"texsync/internal/domain"
	"texsync/internal/logger"
)

// Page selectors for the Overleaf share view. XPath, matching the live DOM.
const (
	// canvasSelector is the render-completion marker: the PDF preview canvas
	// appears once server-side compilation has finished.
	canvasSelector = `//div[@class='canvasWrapper']`

	// downloadButtonSelector is the PDF export control.
	downloadButtonSelector = `//i[contains(@class, 'fa-download')]`
)

// Fetcher drives the document retrieval stage.
type Fetcher struct {
	launcher browser.Launcher
	cfg      Config
	log      logger.Interface
}

// New creates a Fetcher.
func New(launcher browser.Launcher, cfg Config, log logger.Interface) *Fetcher {
	return &Fetcher{
		launcher: launcher,
		cfg:      cfg.WithDefaults(),
		log:      log.WithComponent("fetcher"),
	}
}

// Fetch retrieves the document behind shareURL and returns it in memory.
// The share link is read-only by design; nothing remote is mutated. The
// browser session and the ephemeral download area are cleaned up on all exit
// paths.
func (f *Fetcher) Fetch(ctx context.Context, shareURL string) (*domain.Document, error) {
	sess, err := f.launcher.Launch(ctx, browser.LaunchOptions{Headless: f.cfg.Headless})
	if err != nil {
		return nil, &RetrievalError{Stage: StageLaunch, URL: shareURL, Err: err}
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			f.log.Warn("Failed to close browser session", "error", closeErr)
		}
	}()

	page, err := sess.NewPage()
	if err != nil {
		return nil, &RetrievalError{Stage: StageLaunch, URL: shareURL, Err: err}
	}

	f.log.Info("Navigating to share URL", "url", shareURL)
	if navErr := page.Navigate(shareURL); navErr != nil {
		return nil, &RetrievalError{Stage: StageNavigate, URL: shareURL, Err: navErr}
	}

	// The share page keeps polling in the background indefinitely, so the
	// only reliable ready signal is the render canvas itself.
	f.log.Info("Waiting for render canvas (server-side LaTeX compilation)",
		"timeout", f.cfg.RenderTimeout)
	if waitErr := page.WaitForSelector(canvasSelector, f.cfg.RenderTimeout); waitErr != nil {
		return nil, &RetrievalError{Stage: StageRender, URL: shareURL, Err: waitErr}
	}

	// Register download interest before clicking, otherwise the download can
	// start before the listener attaches.
	f.log.Info("Clicking download button")
	download, err := page.ExpectDownload(func() error {
		return page.Click(downloadButtonSelector)
	})
	if err != nil {
		return nil, &RetrievalError{Stage: StageDownload, URL: shareURL, Err: err}
	}

	doc, err := f.readDownload(download)
	if err != nil {
		return nil, &RetrievalError{Stage: StageSave, URL: shareURL, Err: err}
	}

	f.log.Info("Retrieved document", "name", doc.Name, "bytes", doc.Size())
	return doc, nil
}

// readDownload saves the download into a scoped temporary directory, reads it
// fully into memory, and removes the directory again.
func (f *Fetcher) readDownload(download browser.Download) (*domain.Document, error) {
	dir, err := os.MkdirTemp(f.cfg.TempDir, "texsync-fetch-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create download buffer: %w", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			f.log.Warn("Failed to remove download buffer", "dir", dir, "error", removeErr)
		}
	}()

	name := download.SuggestedFilename()
	path := filepath.Join(dir, name)

	f.log.Debug("Saving download", "path", path)
	if saveErr := download.SaveAs(path); saveErr != nil {
		return nil, fmt.Errorf("failed to save download: %w", saveErr)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read downloaded file: %w", err)
	}

	return &domain.Document{Name: name, Data: data}, nil
}

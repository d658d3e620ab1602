// Package uploader delivers a fetched document into a SharePoint document
// library by driving a browser through the site's upload flow, reusing a
// persisted cookie session and logging in only when that session has expired.
package uploader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"texsync/internal/browser"
	"texsync/internal/domain"
	"texsync/internal/logger"
	"texsync/internal/session"
)

// SharePoint upload flow selectors. XPath, matching the live DOM.
const (
	// uploadIconSelector is the toolbar upload affordance.
	uploadIconSelector = `//i[@data-icon-name='upload']`

	// filesOptionSelector is the "Files" entry in the upload menu; clicking
	// it opens the native file-selection dialog.
	filesOptionSelector = `//li[@role='presentation']//span[contains(text(),'Files')]`

	// uploadedMarkerSelector is the sole success signal; there is no
	// structured upload-progress API to consult.
	uploadedMarkerSelector = `//div[contains(text(),'Uploaded')]`
)

// Uploader drives the document delivery stage.
type Uploader struct {
	launcher browser.Launcher
	store    *session.Store
	cfg      Config
	creds    Credentials
	log      logger.Interface

	// now is the clock used to stamp upload filenames. Injectable for tests.
	now func() time.Time
}

// New creates an Uploader.
func New(
	launcher browser.Launcher,
	store *session.Store,
	cfg Config,
	creds Credentials,
	log logger.Interface,
) *Uploader {
	return &Uploader{
		launcher: launcher,
		store:    store,
		cfg:      cfg.WithDefaults(),
		creds:    creds,
		log:      log.WithComponent("uploader"),
		now:      time.Now,
	}
}

// Upload delivers doc to the configured destination. The cookie store is a
// hard precondition and is checked before any browser resources are acquired;
// on success the (possibly renewed) session cookies are persisted back.
func (u *Uploader) Upload(ctx context.Context, doc *domain.Document) error {
	cookies, err := u.store.Load()
	if err != nil {
		return err
	}

	sess, err := u.launcher.Launch(ctx, browser.LaunchOptions{Headless: u.cfg.Headless})
	if err != nil {
		return &UploadError{Stage: StageLaunch, Name: doc.Name, Err: err}
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			u.log.Warn("Failed to close browser session", "error", closeErr)
		}
	}()

	// Cookies must be in place before the first navigation.
	if addErr := sess.AddCookies(cookies); addErr != nil {
		return &UploadError{Stage: StageLaunch, Name: doc.Name, Err: addErr}
	}

	page, err := sess.NewPage()
	if err != nil {
		return &UploadError{Stage: StageLaunch, Name: doc.Name, Err: err}
	}

	u.log.Info("Navigating to destination", "url", u.cfg.DestinationURL)
	if navErr := page.Navigate(u.cfg.DestinationURL); navErr != nil {
		return &UploadError{Stage: StageNavigate, Name: doc.Name, Err: navErr}
	}

	state, err := ClassifyAuthState(page)
	if err != nil {
		return &UploadError{Stage: StageNavigate, Name: doc.Name, Err: err}
	}
	u.log.Info("Classified page state", "state", state.String())

	loggedIn := false
	if state == AuthRequired {
		if loginErr := u.logIn(page, u.creds); loginErr != nil {
			return &AuthenticationError{URL: u.cfg.DestinationURL, Err: loginErr}
		}
		loggedIn = true

		// Recovery point: a successful login is worth keeping even if the
		// upload steps below fail.
		if saveErr := u.saveCookies(sess); saveErr != nil {
			return saveErr
		}
	}

	if uploadErr := u.performUpload(page, doc, loggedIn); uploadErr != nil {
		return uploadErr
	}

	// Sessions may be silently renewed by the destination, so always refresh
	// the store on success, login or not.
	return u.saveCookies(sess)
}

// performUpload triggers the upload affordance, supplies the file through the
// intercepted chooser, and waits for the confirmation marker.
func (u *Uploader) performUpload(page browser.Page, doc *domain.Document, loggedIn bool) error {
	if err := page.WaitForSelector(uploadIconSelector, u.cfg.ActionTimeout); err != nil {
		// A rejected login surfaces here: the upload UI never appears.
		if loggedIn {
			return &AuthenticationError{URL: u.cfg.DestinationURL, Err: err}
		}
		return &UploadError{Stage: StageTrigger, Name: doc.Name, Err: err}
	}

	u.log.Info("Clicking upload control")
	if err := page.Click(uploadIconSelector); err != nil {
		return &UploadError{Stage: StageTrigger, Name: doc.Name, Err: err}
	}

	path, cleanup, err := u.stageFile(doc)
	if err != nil {
		return &UploadError{Stage: StageTrigger, Name: doc.Name, Err: err}
	}
	defer cleanup()

	u.log.Info("Uploading file", "path", path)
	// The chooser listener must be registered before the click that opens the
	// native dialog.
	if chooserErr := page.ExpectFileChooser(func() error {
		return page.Click(filesOptionSelector)
	}, path); chooserErr != nil {
		return &UploadError{Stage: StageTrigger, Name: doc.Name, Err: chooserErr}
	}

	u.log.Info("Waiting for upload confirmation", "timeout", u.cfg.UploadTimeout)
	if waitErr := page.WaitForSelector(uploadedMarkerSelector, u.cfg.UploadTimeout); waitErr != nil {
		if loggedIn {
			return &AuthenticationError{URL: u.cfg.DestinationURL, Err: waitErr}
		}
		return &UploadError{Stage: StageConfirm, Name: doc.Name, Err: waitErr}
	}

	u.log.Info("File uploaded successfully", "name", filepath.Base(path))
	return nil
}

// stageFile materializes the in-memory payload to a uniquely named temporary
// file. The name carries a Unix-timestamp suffix so repeated uploads of the
// same document never collide at the destination.
func (u *Uploader) stageFile(doc *domain.Document) (string, func(), error) {
	dir, err := os.MkdirTemp(u.cfg.TempDir, "texsync-upload-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create upload buffer: %w", err)
	}
	cleanup := func() {
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			u.log.Warn("Failed to remove upload buffer", "dir", dir, "error", removeErr)
		}
	}

	stamped := domain.StampName(doc.Name, u.now())
	path := filepath.Join(dir, stamped)
	if writeErr := os.WriteFile(path, doc.Data, 0o600); writeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write upload buffer: %w", writeErr)
	}

	return path, cleanup, nil
}

// saveCookies persists the session context's current cookie set.
func (u *Uploader) saveCookies(sess browser.Session) error {
	cookies, err := sess.Cookies()
	if err != nil {
		return &session.StoreError{Op: "save", Path: u.store.Path(), Err: err}
	}
	return u.store.Save(cookies)
}

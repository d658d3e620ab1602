package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"texsync/internal/logger"
	"texsync/internal/session"
)

// PlaywrightLauncher launches Chromium sessions through the Playwright driver.
type PlaywrightLauncher struct {
	log logger.Interface
}

// NewLauncher creates a Playwright-backed launcher.
func NewLauncher(log logger.Interface) *PlaywrightLauncher {
	return &PlaywrightLauncher{
		log: log.WithComponent("browser"),
	}
}

// Install downloads the Playwright driver and the Chromium browser it needs.
// Run once before first use (the `texsync install` command).
func Install() error {
	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	}); err != nil {
		return fmt.Errorf("failed to install playwright driver: %w", err)
	}
	return nil
}

// Launch starts a fresh, isolated Chromium instance with a single context.
func (l *PlaywrightLauncher) Launch(_ context.Context, opts LaunchOptions) (Session, error) {
	l.log.Info("Launching Chromium browser instance", "headless", opts.Headless)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright driver: %w", err)
	}

	chromium, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		stopErr := pw.Stop()
		if stopErr != nil {
			l.log.Warn("Failed to stop playwright driver", "error", stopErr)
		}
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browserCtx, err := chromium.NewContext(playwright.BrowserNewContextOptions{
		AcceptDownloads: playwright.Bool(true),
	})
	if err != nil {
		closeErr := chromium.Close()
		if closeErr != nil {
			l.log.Warn("Failed to close browser", "error", closeErr)
		}
		stopErr := pw.Stop()
		if stopErr != nil {
			l.log.Warn("Failed to stop playwright driver", "error", stopErr)
		}
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	return &playwrightSession{
		pw:      pw,
		browser: chromium,
		ctx:     browserCtx,
		log:     l.log,
	}, nil
}

// playwrightSession wraps one browser plus one context.
type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
	log     logger.Interface
}

// AddCookies injects cookies into the context.
func (s *playwrightSession) AddCookies(cookies []session.Cookie) error {
	optional := make([]playwright.OptionalCookie, 0, len(cookies))
	for i := range cookies {
		optional = append(optional, toOptionalCookie(cookies[i]))
	}
	if err := s.ctx.AddCookies(optional); err != nil {
		return fmt.Errorf("failed to add cookies: %w", err)
	}
	return nil
}

// Cookies returns the context's current cookie set.
func (s *playwrightSession) Cookies() ([]session.Cookie, error) {
	raw, err := s.ctx.Cookies()
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}

	cookies := make([]session.Cookie, 0, len(raw))
	for i := range raw {
		cookies = append(cookies, fromPlaywrightCookie(raw[i]))
	}
	return cookies, nil
}

// NewPage opens a page in the session context.
func (s *playwrightSession) NewPage() (Page, error) {
	page, err := s.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &playwrightPage{page: page, log: s.log}, nil
}

// Close tears down the context, browser, and driver.
func (s *playwrightSession) Close() error {
	s.log.Info("Closing browser")

	var firstErr error
	if err := s.ctx.Close(); err != nil {
		firstErr = fmt.Errorf("failed to close context: %w", err)
	}
	if err := s.browser.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close browser: %w", err)
	}
	if err := s.pw.Stop(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to stop playwright driver: %w", err)
	}
	return firstErr
}

// playwrightPage adapts playwright.Page to the Page capability interface.
type playwrightPage struct {
	page playwright.Page
	log  logger.Interface
}

// Navigate opens the URL, waiting for the load event only.
func (p *playwrightPage) Navigate(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// WaitForSelector blocks until the selector is visible or the timeout elapses.
func (p *playwrightPage) WaitForSelector(selector string, timeout time.Duration) error {
	err := p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("selector %q did not appear within %s: %w", selector, timeout, err)
	}
	return nil
}

// Visible reports whether at least one element matches the selector.
func (p *playwrightPage) Visible(selector string) (bool, error) {
	count, err := p.page.Locator(selector).Count()
	if err != nil {
		return false, fmt.Errorf("failed to query selector %q: %w", selector, err)
	}
	return count > 0, nil
}

// InputValue returns the current value of the first matching input.
func (p *playwrightPage) InputValue(selector string) (string, error) {
	value, err := p.page.Locator(selector).First().InputValue()
	if err != nil {
		return "", fmt.Errorf("failed to read input %q: %w", selector, err)
	}
	return value, nil
}

// Click clicks the first element matching the selector.
func (p *playwrightPage) Click(selector string) error {
	if err := p.page.Locator(selector).First().Click(); err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, err)
	}
	return nil
}

// Fill sets the value of the first matching input.
func (p *playwrightPage) Fill(selector string, value string) error {
	if err := p.page.Locator(selector).First().Fill(value); err != nil {
		return fmt.Errorf("failed to fill %q: %w", selector, err)
	}
	return nil
}

// ExpectDownload registers the download listener before running trigger.
func (p *playwrightPage) ExpectDownload(trigger func() error) (Download, error) {
	download, err := p.page.ExpectDownload(trigger)
	if err != nil {
		return nil, fmt.Errorf("no download was triggered: %w", err)
	}
	return download, nil
}

// ExpectFileChooser registers the file-chooser listener before running
// trigger, then supplies path to the intercepted chooser.
func (p *playwrightPage) ExpectFileChooser(trigger func() error, path string) error {
	chooser, err := p.page.ExpectFileChooser(trigger)
	if err != nil {
		return fmt.Errorf("no file chooser was opened: %w", err)
	}
	if setErr := chooser.SetFiles(path); setErr != nil {
		return fmt.Errorf("failed to supply file to chooser: %w", setErr)
	}
	return nil
}

// toOptionalCookie converts a stored cookie to the Playwright import form.
func toOptionalCookie(c session.Cookie) playwright.OptionalCookie {
	cookie := playwright.OptionalCookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   playwright.String(c.Domain),
		Path:     playwright.String(c.Path),
		Expires:  playwright.Float(c.Expires),
		HttpOnly: playwright.Bool(c.HTTPOnly),
		Secure:   playwright.Bool(c.Secure),
	}
	if sameSite := toSameSite(c.SameSite); sameSite != nil {
		cookie.SameSite = sameSite
	}
	return cookie
}

// fromPlaywrightCookie converts a Playwright context cookie to the stored form.
func fromPlaywrightCookie(c playwright.Cookie) session.Cookie {
	cookie := session.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Expires:  c.Expires,
		HTTPOnly: c.HttpOnly,
		Secure:   c.Secure,
	}
	if c.SameSite != nil {
		cookie.SameSite = string(*c.SameSite)
	}
	return cookie
}

// toSameSite maps the stored sameSite string to the Playwright enum.
func toSameSite(value string) *playwright.SameSiteAttribute {
	switch value {
	case "Strict":
		return playwright.SameSiteAttributeStrict
	case "Lax":
		return playwright.SameSiteAttributeLax
	case "None":
		return playwright.SameSiteAttributeNone
	default:
		return nil
	}
}

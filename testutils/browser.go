// Package testutils provides scripted fakes for the browser capability layer.
package testutils

import (
	"context"
	"os"
	"sync"
	"time"

	"texsync/internal/browser"
	"texsync/internal/session"
)

// FakeLauncher implements browser.Launcher.
type FakeLauncher struct {
	mu sync.Mutex

	// Session is returned from Launch.
	Session *FakeSession
	// Err, when set, fails Launch.
	Err error

	// LaunchCount counts Launch calls.
	LaunchCount int
	// LastOptions records the options of the most recent Launch.
	LastOptions browser.LaunchOptions
}

// Launch implements browser.Launcher.
func (l *FakeLauncher) Launch(_ context.Context, opts browser.LaunchOptions) (browser.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.LaunchCount++
	l.LastOptions = opts
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Session, nil
}

// FakeSession implements browser.Session.
type FakeSession struct {
	// Page is returned from NewPage.
	Page *FakePage
	// CookieJar is returned from Cookies.
	CookieJar []session.Cookie
	// CookiesErr, when set, fails Cookies.
	CookiesErr error
	// NewPageErr, when set, fails NewPage.
	NewPageErr error

	// Added records every AddCookies call.
	Added [][]session.Cookie
	// Closed reports whether Close was called.
	Closed bool
}

// AddCookies implements browser.Session.
func (s *FakeSession) AddCookies(cookies []session.Cookie) error {
	s.Added = append(s.Added, cookies)
	return nil
}

// Cookies implements browser.Session.
func (s *FakeSession) Cookies() ([]session.Cookie, error) {
	if s.CookiesErr != nil {
		return nil, s.CookiesErr
	}
	return s.CookieJar, nil
}

// NewPage implements browser.Session.
func (s *FakeSession) NewPage() (browser.Page, error) {
	if s.NewPageErr != nil {
		return nil, s.NewPageErr
	}
	return s.Page, nil
}

// Close implements browser.Session.
func (s *FakeSession) Close() error {
	s.Closed = true
	return nil
}

// FakePage implements browser.Page with scripted element state.
type FakePage struct {
	// VisibleSelectors maps selectors to their presence.
	VisibleSelectors map[string]bool
	// InputValues maps input selectors to their current values.
	InputValues map[string]string
	// WaitErrs maps selectors to WaitForSelector failures.
	WaitErrs map[string]error
	// ClickErrs maps selectors to Click failures.
	ClickErrs map[string]error
	// NavigateErr, when set, fails Navigate.
	NavigateErr error
	// Download is returned from ExpectDownload.
	Download *FakeDownload
	// DownloadErr, when set, fails ExpectDownload.
	DownloadErr error
	// ChooserErr, when set, fails ExpectFileChooser.
	ChooserErr error

	// NavigatedTo records Navigate calls.
	NavigatedTo []string
	// Waits records WaitForSelector calls.
	Waits []string
	// Clicks records Click calls, including those issued by triggers.
	Clicks []string
	// Fills records Fill calls in order as selector=value strings.
	Fills []string
	// ChooserPaths records the file paths supplied to intercepted choosers.
	ChooserPaths []string
}

// Navigate implements browser.Page.
func (p *FakePage) Navigate(url string) error {
	p.NavigatedTo = append(p.NavigatedTo, url)
	return p.NavigateErr
}

// WaitForSelector implements browser.Page.
func (p *FakePage) WaitForSelector(selector string, _ time.Duration) error {
	p.Waits = append(p.Waits, selector)
	if err, ok := p.WaitErrs[selector]; ok {
		return err
	}
	return nil
}

// Visible implements browser.Page.
func (p *FakePage) Visible(selector string) (bool, error) {
	return p.VisibleSelectors[selector], nil
}

// InputValue implements browser.Page.
func (p *FakePage) InputValue(selector string) (string, error) {
	return p.InputValues[selector], nil
}

// Click implements browser.Page.
func (p *FakePage) Click(selector string) error {
	p.Clicks = append(p.Clicks, selector)
	if err, ok := p.ClickErrs[selector]; ok {
		return err
	}
	return nil
}

// Fill implements browser.Page. The filled value becomes the input's current
// value, so "already filled" checks behave like a real page.
func (p *FakePage) Fill(selector string, value string) error {
	if p.InputValues == nil {
		p.InputValues = make(map[string]string)
	}
	p.InputValues[selector] = value
	p.Fills = append(p.Fills, selector+"="+value)
	return nil
}

// ExpectDownload implements browser.Page.
func (p *FakePage) ExpectDownload(trigger func() error) (browser.Download, error) {
	if err := trigger(); err != nil {
		return nil, err
	}
	if p.DownloadErr != nil {
		return nil, p.DownloadErr
	}
	return p.Download, nil
}

// ExpectFileChooser implements browser.Page.
func (p *FakePage) ExpectFileChooser(trigger func() error, path string) error {
	if err := trigger(); err != nil {
		return err
	}
	if p.ChooserErr != nil {
		return p.ChooserErr
	}
	p.ChooserPaths = append(p.ChooserPaths, path)
	return nil
}

// FakeDownload implements browser.Download.
type FakeDownload struct {
	// Name is the suggested filename.
	Name string
	// Data is the downloaded content, written by SaveAs.
	Data []byte
	// SaveErr, when set, fails SaveAs.
	SaveErr error
}

// SuggestedFilename implements browser.Download.
func (d *FakeDownload) SuggestedFilename() string {
	return d.Name
}

// SaveAs implements browser.Download.
func (d *FakeDownload) SaveAs(path string) error {
	if d.SaveErr != nil {
		return d.SaveErr
	}
	return os.WriteFile(path, d.Data, 0o600)
}

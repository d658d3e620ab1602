package uploader

import (
	"fmt"

	"texsync/internal/browser"
)

// Microsoft login form selectors. XPath, matching the live DOM.
const (
	emailInputSelector    = `//input[@type='email']`
	passwordInputSelector = `//input[@type='password']`
	submitButtonSelector  = `//input[@type='submit']`
)

// AuthState classifies whether the destination page is asking for login.
// Computed once per navigation instead of scattering presence checks through
// the control flow.
type AuthState int

const (
	// AuthUnknown means the page state could not be determined.
	AuthUnknown AuthState = iota
	// AuthRequired means a login form is present.
	AuthRequired
	// AuthNotRequired means the persisted session still authenticates.
	AuthNotRequired
)

// String returns the state name.
func (s AuthState) String() string {
	switch s {
	case AuthRequired:
		return "auth_required"
	case AuthNotRequired:
		return "auth_not_required"
	default:
		return "unknown"
	}
}

// ClassifyAuthState inspects the page for login inputs. An email or password
// field means the session cookies no longer authenticate.
func ClassifyAuthState(page browser.Page) (AuthState, error) {
	hasPassword, err := page.Visible(passwordInputSelector)
	if err != nil {
		return AuthUnknown, fmt.Errorf("failed to probe password field: %w", err)
	}
	if hasPassword {
		return AuthRequired, nil
	}

	hasEmail, err := page.Visible(emailInputSelector)
	if err != nil {
		return AuthUnknown, fmt.Errorf("failed to probe email field: %w", err)
	}
	if hasEmail {
		return AuthRequired, nil
	}

	return AuthNotRequired, nil
}

// logIn runs the Microsoft login flow: an email step then a password step,
// each skipped when its field is absent or already filled. Filling only a
// present-and-empty field keeps the flow safe to run against a page that has
// autofilled or partially completed the form.
func (u *Uploader) logIn(page browser.Page, creds Credentials) error {
	if err := u.fillStep(page, emailInputSelector, creds.Username); err != nil {
		return fmt.Errorf("email step: %w", err)
	}
	if err := u.fillStep(page, passwordInputSelector, creds.Password); err != nil {
		return fmt.Errorf("password step: %w", err)
	}
	return nil
}

// fillStep fills the input matching selector and submits, when the input is
// present and empty.
func (u *Uploader) fillStep(page browser.Page, selector, value string) error {
	present, err := page.Visible(selector)
	if err != nil {
		return err
	}
	if !present {
		u.log.Debug("Login step skipped, field absent", "selector", selector)
		return nil
	}

	current, err := page.InputValue(selector)
	if err != nil {
		return err
	}
	if current != "" {
		u.log.Debug("Login step skipped, field already filled", "selector", selector)
		return nil
	}

	u.log.Info("Filling login field", "selector", selector)
	if fillErr := page.Fill(selector, value); fillErr != nil {
		return fillErr
	}
	return page.Click(submitButtonSelector)
}

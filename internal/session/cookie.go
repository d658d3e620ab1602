// Package session persists browser session cookies between runs so the
// uploader can skip interactive login on the destination site.
package session

// Cookie is a single browser cookie record. The JSON field names match the
// Playwright context cookie format so the store file is interchangeable with
// the browser engine's own session export.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite,omitempty"`
}

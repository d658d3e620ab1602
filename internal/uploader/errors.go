package uploader

import "fmt"

// Upload stages reported by UploadError.
const (
	StageLaunch   = "launch"
	StageNavigate = "navigate"
	StageTrigger  = "trigger"
	StageConfirm  = "confirm"
)

// AuthenticationError indicates login was attempted in this run and the flow
// subsequently failed, which is how rejected credentials surface: SharePoint
// reports no structured login error, the upload UI simply never appears.
type AuthenticationError struct {
	// URL is the destination being authenticated against.
	URL string
	// Err is the underlying cause, usually a downstream timeout.
	Err error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// UploadError indicates the upload flow failed without a login having been
// attempted, most commonly a missing upload control or a confirmation-marker
// timeout.
type UploadError struct {
	// Stage is the workflow step that failed.
	Stage string
	// Name is the destination filename being uploaded.
	Name string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *UploadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("upload failed at %s stage: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("upload of %s failed at %s stage: %v", e.Name, e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *UploadError) Unwrap() error {
	return e.Err
}

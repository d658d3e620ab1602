package fetcher

import "fmt"

// Retrieval stages reported by RetrievalError.
const (
	StageLaunch   = "launch"
	StageNavigate = "navigate"
	StageRender   = "render"
	StageDownload = "download"
	StageSave     = "save"
)

// RetrievalError indicates the document could not be fetched: the page never
// reached a renderable state in time, the download was never triggered, or
// the artifact could not be captured.
type RetrievalError struct {
	// Stage is the workflow step that failed.
	Stage string
	// URL is the share link being fetched.
	URL string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed at %s stage for %s: %v", e.Stage, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RetrievalError) Unwrap() error {
	return e.Err
}

package session

import "fmt"

// StoreError indicates the cookie file could not be read or written.
type StoreError struct {
	// Op is the failing operation, "load" or "save".
	Op string
	// Path is the cookie file location.
	Path string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("session store: failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

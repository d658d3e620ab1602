package session

import (
	"encoding/json"
	"fmt"
	"os"

	"texsync/internal/logger"
)

// Store reads and writes the cookie file. It is a single-writer,
// single-reader resource per run; concurrent runs against the same file are
// not supported.
type Store struct {
	path string
	log  logger.Interface
}

// NewStore creates a cookie store backed by the file at path.
func NewStore(path string, log logger.Interface) *Store {
	return &Store{
		path: path,
		log:  log.WithComponent("session"),
	}
}

// Path returns the cookie file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted cookie set. A missing or unreadable file is a hard
// failure: the uploader requires an existing session to start from.
func (s *Store) Load() ([]Cookie, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &StoreError{Op: "load", Path: s.path, Err: err}
	}

	var cookies []Cookie
	if unmarshalErr := json.Unmarshal(data, &cookies); unmarshalErr != nil {
		return nil, &StoreError{Op: "load", Path: s.path, Err: fmt.Errorf("invalid cookie file: %w", unmarshalErr)}
	}

	s.log.Info("Loaded cookies from store", "path", s.path, "count", len(cookies))
	return cookies, nil
}

// Save persists the cookie set, replacing any previous contents. Sessions may
// be silently renewed by the destination site, so callers save on every
// successful run.
func (s *Store) Save(cookies []Cookie) error {
	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return &StoreError{Op: "save", Path: s.path, Err: err}
	}

	// 0600: the file carries live session credentials.
	if writeErr := os.WriteFile(s.path, data, 0o600); writeErr != nil {
		return &StoreError{Op: "save", Path: s.path, Err: writeErr}
	}

	s.log.Info("Saved cookies to store", "path", s.path, "count", len(cookies))
	return nil
}

// Package domain contains the core types shared between pipeline stages.
package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Document is the payload passed from the fetch stage to the upload stage.
// It is immutable once produced and lives only for the duration of a run.
type Document struct {
	// Name is the suggested filename as offered by the download event,
	// including the extension.
	Name string
	// Data is the raw document content.
	Data []byte
}

// Size returns the document size in bytes.
func (d *Document) Size() int {
	return len(d.Data)
}

// StampName returns name with a Unix-timestamp suffix inserted before the
// extension, so repeated uploads of the same document never collide.
// "proj.pdf" becomes "proj-1700000000.pdf".
func StampName(name string, t time.Time) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s-%d%s", base, t.Unix(), ext)
}

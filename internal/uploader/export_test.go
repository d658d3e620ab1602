package uploader

import "time"

// SetClock overrides the filename-stamping clock for tests.
func SetClock(u *Uploader, now func() time.Time) {
	u.now = now
}

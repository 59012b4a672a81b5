//go:build linux

package sir

import "syscall"

// currentTID returns the calling OS thread's id. Go goroutines are not
// bound to one OS thread for their lifetime, so this reflects whichever M
// happens to be running the call right now; the spec's "tid string, empty
// when tid equals pid" rule absorbs this naturally on platforms (or
// goroutine-heavy programs) where the distinction isn't meaningful.
func currentTID() int64 {
	return int64(syscall.Gettid())
}

package sir

import "runtime"

// isCaseInsensitiveFS reports whether cached file paths should be compared
// case-insensitively, matching the spec's Windows/Unix split for duplicate
// detection in the File Cache.
func isCaseInsensitiveFS() bool {
	return runtime.GOOS == "windows"
}

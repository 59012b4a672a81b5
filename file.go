package sir

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// sequenceCounter is the process-global, atomically incremented counter
// that disambiguates archive names produced within the same second. The
// source's counter is a plain volatile unsigned long long; the spec upgrades
// it to a genuinely atomic counter (see SPEC_FULL.md OQ-3), which on Go
// means sync/atomic rather than a plain field.
var sequenceCounter uint64

func nextSequence() uint64 {
	return atomic.AddUint64(&sequenceCounter, 1) - 1
}

// cachedFile is one entry in the File Cache: an open append-mode file with
// its own level and option mask.
type cachedFile struct {
	path    string
	file    *os.File
	levels  LevelMask
	options OptionMask
}

func stemExt(path string) (stem, ext string) {
	dir, base := filepath.Split(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return dir + base[:i], base[i:]
	}
	return path, ""
}

func formatArchiveTimestamp(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d-%02d%02d%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}

func archiveName(path string, t time.Time, seq uint64) string {
	stem, ext := stemExt(path)
	return fmt.Sprintf("%s-%s-%d%s", stem, formatArchiveTimestamp(t), seq, ext)
}

func sessionBeginHeader(t time.Time) string {
	return fmt.Sprintf("\n\n----- session begin @ %s -----\n\n", t.Format("15:04:05 Monday 02 Jan 06 (MST)"))
}

func rollHeader(archive string, t time.Time) string {
	return fmt.Sprintf("\n\n----- archived as %s due to size @ %s -----\n\n", archive, t.Format("15:04:05 Monday 02 Jan 06 (MST)"))
}

// openCachedFile opens path in append mode and, unless suppressed, writes
// the session-begin header.
func openCachedFile(path string, levels LevelMask, options OptionMask) (*cachedFile, *Error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, newPlatformError(err)
	}
	cf := &cachedFile{path: path, file: f, levels: levels, options: options}
	if !options.has(OptNoHeader) {
		if _, err := f.WriteString(sessionBeginHeader(time.Now())); err != nil {
			f.Close()
			return nil, newPlatformError(err)
		}
	}
	return cf, nil
}

func (cf *cachedFile) close() *Error {
	if err := cf.file.Close(); err != nil {
		return newPlatformError(err)
	}
	return nil
}

// needsRoll reports whether the file has reached the roll threshold.
func (cf *cachedFile) needsRoll() (bool, *Error) {
	info, err := cf.file.Stat()
	if err != nil {
		return false, newPlatformError(err)
	}
	return info.Size() >= rollThresholdBytes, nil
}

// write appends p to the file, rolling first if the size threshold has been
// reached. A short write is reported as a platform error; the file stays
// cached so a later call may retry (SPEC_FULL.md OQ-2: no eviction on
// repeated short writes, matching the source's own choice).
func (cf *cachedFile) write(p []byte) *Error {
	if roll, err := cf.needsRoll(); err != nil {
		return err
	} else if roll {
		if err := cf.roll(); err != nil {
			return err
		}
	}
	n, err := cf.file.Write(p)
	if err != nil {
		return newPlatformError(err)
	}
	if n != len(p) {
		return newPlatformError(fmt.Errorf("short write: wrote %d of %d bytes", n, len(p)))
	}
	return nil
}

func timeNow() time.Time { return time.Now() }

// roll renames the live file to a timestamped archive and reopens the
// original path. If the archive name is already taken on disk, the roll
// fails and the live file is left completely untouched.
func (cf *cachedFile) roll() *Error {
	return cf.rollAt(timeNow(), nextSequence())
}

// rollAt is roll with the timestamp and sequence number taken as
// parameters, so tests can force a specific archive name.
func (cf *cachedFile) rollAt(now time.Time, seq uint64) *Error {
	archive := archiveName(cf.path, now, seq)

	if _, err := os.Stat(archive); err == nil {
		return newError(ErrPlatform)
	} else if !os.IsNotExist(err) {
		return newPlatformError(err)
	}

	if runtime.GOOS == "windows" {
		// Windows cannot rename a file with an open handle; close first.
		if err := cf.file.Close(); err != nil {
			return newPlatformError(err)
		}
		if err := os.Rename(cf.path, archive); err != nil {
			return newPlatformError(err)
		}
	} else {
		// Unix permits renaming out from under an open descriptor.
		if err := os.Rename(cf.path, archive); err != nil {
			return newPlatformError(err)
		}
	}

	f, err := os.OpenFile(cf.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return newPlatformError(err)
	}
	cf.file = f

	if _, err := f.WriteString(rollHeader(archive, now)); err != nil {
		return newPlatformError(err)
	}
	return nil
}

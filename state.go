package sir

import (
	"log/syslog"
	"os"
	"sync"
)

const (
	defaultStdoutLevels = LevelMask(1)<<LevelDebug | LevelMask(1)<<LevelInfo | LevelMask(1)<<LevelNotice | LevelMask(1)<<LevelWarn
	defaultStdoutOpts   = OptNoTime | OptNoPID | OptNoTID

	defaultStderrLevels = LevelMask(1)<<LevelError | LevelMask(1)<<LevelCritical | LevelMask(1)<<LevelEmergency
	defaultStderrOpts   = OptNoTime | OptNoPID | OptNoTID

	defaultSyslogLevels = LevelMask(1)<<LevelWarn | LevelMask(1)<<LevelCritical | LevelMask(1)<<LevelAlert | LevelMask(1)<<LevelEmergency

	defaultFileLevels = LevelMaskAll
	defaultFileOpts   = OptionMask(0)
)

// libState is the Library State component: the single process-wide record
// of destination configuration, protected by its own lock, independent of
// the File Cache and Style Table locks (see §5 of SPEC_FULL.md).
type libState struct {
	mu sync.RWMutex

	initialized bool
	processName string

	stdoutLevels LevelMask
	stdoutOpts   OptionMask
	stderrLevels LevelMask
	stderrOpts   OptionMask

	syslogLevels     LevelMask
	syslogIncludePID bool
	syslogWriter     *syslog.Writer

	stdoutWriter *streamWriter
	stderrWriter *streamWriter

	files  *fileCache
	styles *styleTable
}

// snapshot is the Dispatcher's copy of the configuration taken under the
// Library State lock and used after the lock is released.
type snapshot struct {
	processName  string
	stdoutLevels LevelMask
	stdoutOpts   OptionMask
	stderrLevels LevelMask
	stderrOpts   OptionMask
	syslogLevels LevelMask
	syslogPID    bool
}

// lib is the process-wide instance. Go's zero-value sync.Mutex/RWMutex
// needs no lazy one-shot construction the way the source's lock objects
// do (see SPEC_FULL.md §5): declaring the struct is enough to make every section
// lock safe for concurrent first use.
var lib = &libState{
	files:  newFileCache(),
	styles: newStyleTable(),
}

// Init brings the library up with the given configuration. It fails with
// ErrAlreadyInitialized if the library is already up.
func Init(cfg Config) *Error {
	lib.mu.Lock()
	defer lib.mu.Unlock()

	if lib.initialized {
		return newError(ErrAlreadyInitialized)
	}

	if len(cfg.ProcessName) > maxProcessName {
		return newError(ErrInvalidString)
	}

	stdoutLevels := cfg.Stdout.Levels.resolve(defaultStdoutLevels)
	stdoutOpts := cfg.Stdout.Options.resolve(defaultStdoutOpts)
	stderrLevels := cfg.Stderr.Levels.resolve(defaultStderrLevels)
	stderrOpts := cfg.Stderr.Options.resolve(defaultStderrOpts)
	syslogLevels := cfg.Syslog.Levels.resolve(defaultSyslogLevels)

	if !stdoutLevels.valid() || !stderrLevels.valid() || !syslogLevels.valid() {
		return newError(ErrInvalidLevels)
	}
	if !stdoutOpts.valid() || !stderrOpts.valid() {
		return newError(ErrInvalidOptions)
	}

	// The system log is an optional collaborator (SPEC_FULL.md §9 /
	// Design Notes "Platform abstraction"): when it can't be reached, its
	// configuration is still accepted and calls to it simply no-op,
	// rather than Init failing outright.
	var sw *syslog.Writer
	if syslogLevels != LevelMaskNone {
		identity := cfg.Syslog.Identity
		if identity == "" {
			identity = cfg.ProcessName
		}
		if w, err := syslog.New(syslog.LOG_INFO, identity); err == nil {
			sw = w
		}
	}

	lib.processName = cfg.ProcessName
	lib.stdoutLevels = stdoutLevels
	lib.stdoutOpts = stdoutOpts
	lib.stderrLevels = stderrLevels
	lib.stderrOpts = stderrOpts
	lib.syslogLevels = syslogLevels
	lib.syslogIncludePID = cfg.Syslog.IncludePID
	lib.syslogWriter = sw
	lib.stdoutWriter = newStreamWriter(os.Stdout)
	lib.stderrWriter = newStreamWriter(os.Stderr)
	lib.initialized = true
	return nil
}

// Cleanup tears the library down: closes every cached file, closes the
// syslog connection, resets style overrides, and clears the sentinel. After
// Cleanup every operation but Init fails with ErrNotReady.
func Cleanup() *Error {
	lib.mu.Lock()
	defer lib.mu.Unlock()

	if !lib.initialized {
		return newError(ErrNotReady)
	}

	lib.files.mu.Lock()
	for _, f := range lib.files.files {
		f.close()
	}
	lib.files.files = lib.files.files[:0]
	lib.files.mu.Unlock()

	if lib.syslogWriter != nil {
		lib.syslogWriter.Close()
		lib.syslogWriter = nil
	}

	lib.styles.resetAll()

	lib.processName = ""
	lib.stdoutLevels, lib.stdoutOpts = 0, 0
	lib.stderrLevels, lib.stderrOpts = 0, 0
	lib.syslogLevels = 0
	lib.initialized = false
	return nil
}

func (l *libState) requireReady() *Error {
	if !l.initialized {
		return newErrorSkip(ErrNotReady, 3)
	}
	return nil
}

func (l *libState) snapshot() (snapshot, *Error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.initialized {
		return snapshot{}, newErrorSkip(ErrNotReady, 3)
	}
	return snapshot{
		processName:  l.processName,
		stdoutLevels: l.stdoutLevels,
		stdoutOpts:   l.stdoutOpts,
		stderrLevels: l.stderrLevels,
		stderrOpts:   l.stderrOpts,
		syslogLevels: l.syslogLevels,
		syslogPID:    l.syslogIncludePID,
	}, nil
}

// UpdateStdoutLevels replaces the stdout destination's level mask.
func UpdateStdoutLevels(cfg LevelConfig) *Error {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if err := lib.requireReady(); err != nil {
		return err
	}
	mask := cfg.resolve(defaultStdoutLevels)
	if !mask.valid() {
		return newError(ErrInvalidLevels)
	}
	lib.stdoutLevels = mask
	return nil
}

// UpdateStdoutOptions replaces the stdout destination's option mask.
func UpdateStdoutOptions(cfg OptionConfig) *Error {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if err := lib.requireReady(); err != nil {
		return err
	}
	mask := cfg.resolve(defaultStdoutOpts)
	if !mask.valid() {
		return newError(ErrInvalidOptions)
	}
	lib.stdoutOpts = mask
	return nil
}

// UpdateStderrLevels replaces the stderr destination's level mask.
func UpdateStderrLevels(cfg LevelConfig) *Error {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if err := lib.requireReady(); err != nil {
		return err
	}
	mask := cfg.resolve(defaultStderrLevels)
	if !mask.valid() {
		return newError(ErrInvalidLevels)
	}
	lib.stderrLevels = mask
	return nil
}

// UpdateStderrOptions replaces the stderr destination's option mask.
func UpdateStderrOptions(cfg OptionConfig) *Error {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if err := lib.requireReady(); err != nil {
		return err
	}
	mask := cfg.resolve(defaultStderrOpts)
	if !mask.valid() {
		return newError(ErrInvalidOptions)
	}
	lib.stderrOpts = mask
	return nil
}

// UpdateSyslogLevels replaces the system-log destination's level mask.
func UpdateSyslogLevels(cfg LevelConfig) *Error {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if err := lib.requireReady(); err != nil {
		return err
	}
	mask := cfg.resolve(defaultSyslogLevels)
	if !mask.valid() {
		return newError(ErrInvalidLevels)
	}
	lib.syslogLevels = mask
	return nil
}

// AddFile adds path to the File Cache with the given level/option
// configuration, returning a stable handle for later updates/removal.
func AddFile(path string, levels LevelConfig, opts OptionConfig) (FileHandle, *Error) {
	lib.mu.RLock()
	ready := lib.initialized
	lib.mu.RUnlock()
	if !ready {
		return FileHandle{}, newError(ErrNotReady)
	}

	mask := levels.resolve(defaultFileLevels)
	omask := opts.resolve(defaultFileOpts)
	if !mask.valid() {
		return FileHandle{}, newError(ErrInvalidLevels)
	}
	if !omask.valid() {
		return FileHandle{}, newError(ErrInvalidOptions)
	}
	return lib.files.add(path, mask, omask)
}

// RemoveFile evicts and closes the cached file referenced by h.
func RemoveFile(h FileHandle) *Error {
	if err := lib.requireReadyRLock(); err != nil {
		return err
	}
	return lib.files.remove(h)
}

// UpdateFileLevels replaces the level mask of the cached file referenced
// by h.
func UpdateFileLevels(h FileHandle, cfg LevelConfig) *Error {
	if err := lib.requireReadyRLock(); err != nil {
		return err
	}
	mask := cfg.resolve(defaultFileLevels)
	if !mask.valid() {
		return newError(ErrInvalidLevels)
	}
	return lib.files.updateLevels(h, mask)
}

// UpdateFileOptions replaces the option mask of the cached file referenced
// by h.
func UpdateFileOptions(h FileHandle, cfg OptionConfig) *Error {
	if err := lib.requireReadyRLock(); err != nil {
		return err
	}
	mask := cfg.resolve(defaultFileOpts)
	if !mask.valid() {
		return newError(ErrInvalidOptions)
	}
	return lib.files.updateOptions(h, mask)
}

func (l *libState) requireReadyRLock() *Error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.initialized {
		return newErrorSkip(ErrNotReady, 3)
	}
	return nil
}

// SetTextStyle overrides the rendered style for level.
func SetTextStyle(level Level, style Style) *Error {
	if err := lib.requireReadyRLock(); err != nil {
		return err
	}
	return lib.styles.set(level, style)
}

// ResetTextStyles clears every style override back to its default.
func ResetTextStyles() *Error {
	if err := lib.requireReadyRLock(); err != nil {
		return err
	}
	lib.styles.resetAll()
	return nil
}

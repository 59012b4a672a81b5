package sir

import (
	"fmt"
	"runtime"
	"sync"
)

// ErrorKind enumerates the failure categories a call can return, mirroring
// the error kinds of the carrier this package's error-return convention
// replaces (see the package doc and DESIGN.md for the rationale).
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrNotReady
	ErrAlreadyInitialized
	ErrDuplicateFile
	ErrNoSuchFile
	ErrCacheFull
	ErrInvalidOptions
	ErrInvalidLevels
	ErrInvalidTextStyle
	ErrInvalidString
	ErrNoDestination
	ErrPlatform
	ErrUnknown
)

var errKindMessages = map[ErrorKind]string{
	ErrNone:               "no error",
	ErrNotReady:           "library not initialized",
	ErrAlreadyInitialized: "library already initialized",
	ErrDuplicateFile:      "file already cached",
	ErrNoSuchFile:         "no such cached file",
	ErrCacheFull:          "file cache is full",
	ErrInvalidOptions:     "invalid option mask",
	ErrInvalidLevels:      "invalid level mask",
	ErrInvalidTextStyle:   "invalid text style",
	ErrInvalidString:      "invalid string argument",
	ErrNoDestination:      "no destination admitted the level",
	ErrPlatform:           "platform error",
	ErrUnknown:            "unknown error",
}

func (k ErrorKind) String() string {
	if m, ok := errKindMessages[k]; ok {
		return m
	}
	return "unknown error"
}

// Error is the concrete error type returned by every public operation that
// can fail. It carries the same information the source's thread-local
// carrier would have held: the kind, an optional wrapped OS error, and the
// call site that produced it.
type Error struct {
	Kind   ErrorKind
	Func   string
	File   string
	Line   int
	os     error
}

func (e *Error) Error() string {
	if e == nil {
		return ErrNone.String()
	}
	if e.Kind == ErrPlatform && e.os != nil {
		return fmt.Sprintf("Error in %s (%s:%d): '%s: %s'", e.Func, e.File, e.Line, e.Kind, e.os)
	}
	return fmt.Sprintf("Error in %s (%s:%d): '%s'", e.Func, e.File, e.Line, e.Kind)
}

// Unwrap exposes the wrapped OS error, if any, so errors.Is/errors.As work
// against the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.os
}

// Is allows errors.Is(err, sir.ErrNoDestination.AsKind()) style comparisons
// against an ErrorKind.
func (e *Error) Is(target error) bool {
	if k, ok := target.(errorKindSentinel); ok {
		return e != nil && e.Kind == ErrorKind(k)
	}
	return false
}

type errorKindSentinel ErrorKind

func (s errorKindSentinel) Error() string { return ErrorKind(s).String() }

// AsKind turns an ErrorKind into a comparable error for use with errors.Is.
func (k ErrorKind) AsKind() error { return errorKindSentinel(k) }

func newError(kind ErrorKind) *Error {
	return newErrorSkip(kind, 2)
}

func newErrorSkip(kind ErrorKind, skip int) *Error {
	e := &Error{Kind: kind}
	if pc, file, line, ok := runtime.Caller(skip); ok {
		e.File = file
		e.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.Func = fn.Name()
		}
	}
	rememberLastError(e)
	return e
}

func newPlatformError(cause error) *Error {
	e := newErrorSkip(ErrPlatform, 3)
	e.os = cause
	return e
}

// lastErrors is a best-effort, goroutine-id-keyed map standing in for the
// source's thread-local carrier. It is advisory only: Go gives no guarantee
// that a goroutine's identity is stable across a call that might be
// rescheduled onto a different OS thread mid-flight, so LastError should
// not be relied on the way the original per-thread carrier was. Every
// public call already returns its own error; prefer that.
var (
	lastErrorsMu sync.Mutex
	lastErrors   = map[int64]*Error{}
)

func rememberLastError(e *Error) {
	lastErrorsMu.Lock()
	lastErrors[goroutineID()] = e
	lastErrorsMu.Unlock()
}

// LastError returns the most recent error recorded by a call believed to
// have run on the calling goroutine. It exists only for callers porting
// code shaped around a thread-local "read last error" call; new code should
// use the error return value of each operation directly.
func LastError() *Error {
	lastErrorsMu.Lock()
	defer lastErrorsMu.Unlock()
	return lastErrors[goroutineID()]
}

// goroutineID extracts the numeric goroutine id from the runtime stack
// trace. It is a debugging convenience, not a supported identity: the
// runtime makes no promise this id is stable or even present in future
// versions.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id int64
	for _, c := range buf[len("goroutine "):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}

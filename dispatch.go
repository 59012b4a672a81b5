package sir

import (
	"fmt"
	"log/syslog"
	"time"
)

// syslogPriority maps a Level to its platform system-log priority, per the
// fixed table in SPEC_FULL.md §6.
func syslogPriority(l Level) syslog.Priority {
	switch l {
	case LevelEmergency:
		return syslog.LOG_EMERG
	case LevelAlert:
		return syslog.LOG_ALERT
	case LevelCritical:
		return syslog.LOG_CRIT
	case LevelError:
		return syslog.LOG_ERR
	case LevelWarn:
		return syslog.LOG_WARNING
	case LevelNotice:
		return syslog.LOG_NOTICE
	case LevelInfo:
		return syslog.LOG_INFO
	default:
		return syslog.LOG_DEBUG
	}
}

func emitSyslog(w *syslog.Writer, prio syslog.Priority, msg string) error {
	switch prio {
	case syslog.LOG_EMERG:
		return w.Emerg(msg)
	case syslog.LOG_ALERT:
		return w.Alert(msg)
	case syslog.LOG_CRIT:
		return w.Crit(msg)
	case syslog.LOG_ERR:
		return w.Err(msg)
	case syslog.LOG_WARNING:
		return w.Warning(msg)
	case syslog.LOG_NOTICE:
		return w.Notice(msg)
	case syslog.LOG_INFO:
		return w.Info(msg)
	default:
		return w.Debug(msg)
	}
}

// log is the Dispatcher's entry point, shared by every per-level public
// function. It validates state, takes a lock-protected snapshot of the
// configuration, formats once per destination's option mask, and fans out
// to stdout, stderr, the system log, and the file cache in that order.
func log(calldepth int, level Level, format string, args ...interface{}) *Error {
	if !level.valid() {
		return newErrorSkip(ErrInvalidLevels, calldepth)
	}
	if format == "" {
		return newErrorSkip(ErrInvalidString, calldepth)
	}

	snap, err := lib.snapshot()
	if err != nil {
		return err
	}

	style := lib.styles.get(level)
	now := time.Now()
	msg := truncateMessage(fmt.Sprintf(format, args...))

	f := fields{
		style:   style,
		when:    now,
		level:   level,
		name:    snap.processName,
		pid:     currentPID,
		tid:     currentTID(),
		message: msg,
	}

	admitted := 0
	wrote := 0

	if snap.stdoutLevels.Admits(level) {
		admitted++
		buf := getBuffer()
		renderLine(buf, f, snap.stdoutOpts, lib.stdoutWriter.isTTY)
		if _, werr := lib.stdoutWriter.write(buf.Bytes()); werr == nil {
			wrote++
		}
		putBuffer(buf)
	}

	if snap.stderrLevels.Admits(level) {
		admitted++
		buf := getBuffer()
		renderLine(buf, f, snap.stderrOpts, lib.stderrWriter.isTTY)
		if _, werr := lib.stderrWriter.write(buf.Bytes()); werr == nil {
			wrote++
		}
		putBuffer(buf)
	}

	if snap.syslogLevels.Admits(level) {
		admitted++
		lib.mu.RLock()
		w := lib.syslogWriter
		lib.mu.RUnlock()
		if w != nil {
			if emitSyslog(w, syslogPriority(level), msg) == nil {
				wrote++
			}
		}
	}

	fwanted, fwrote := lib.files.dispatch(f)
	admitted += fwanted
	wrote += fwrote

	if admitted == 0 {
		return newErrorSkip(ErrNoDestination, calldepth)
	}
	if wrote != admitted {
		return newErrorSkip(ErrPlatform, calldepth)
	}
	return nil
}

// LogFromCaller behaves like the per-level functions but lets a wrapper
// adjust which stack frame's caller information would be reported by a
// future file/line-aware formatter; the default formatter does not render
// code location, so calldepth only affects error call-site reporting today.
func LogFromCaller(calldepth int, level Level, format string, args ...interface{}) *Error {
	return log(calldepth+1, level, format, args...)
}

// Debug logs a message at the debug level.
func Debug(format string, args ...interface{}) *Error { return log(2, LevelDebug, format, args...) }

// Info logs a message at the info level.
func Info(format string, args ...interface{}) *Error { return log(2, LevelInfo, format, args...) }

// Notice logs a message at the notice level.
func Notice(format string, args ...interface{}) *Error { return log(2, LevelNotice, format, args...) }

// Warn logs a message at the warn level.
func Warn(format string, args ...interface{}) *Error { return log(2, LevelWarn, format, args...) }

// ErrorLog logs a message at the error level.
func ErrorLog(format string, args ...interface{}) *Error { return log(2, LevelError, format, args...) }

// Critical logs a message at the critical level.
func Critical(format string, args ...interface{}) *Error {
	return log(2, LevelCritical, format, args...)
}

// Alert logs a message at the alert level.
func Alert(format string, args ...interface{}) *Error { return log(2, LevelAlert, format, args...) }

// Emergency logs a message at the emergency level.
func Emergency(format string, args ...interface{}) *Error {
	return log(2, LevelEmergency, format, args...)
}

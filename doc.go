/*
Package sir is a process-wide, multi-destination leveled logging library.

A single call site can fan a message out to the standard output stream, the
standard error stream, the platform system log, and any number of append-mode
log files, each with its own level mask, formatting options, and (for the
console destinations) ANSI text style.

The package mirrors the lifecycle of a C logging library: Init configures the
process-wide state once, Cleanup tears it down, and between the two, any
goroutine may call the per-level logging functions concurrently. There is no
background goroutine and no queue; every call does its own formatting and I/O
on the caller's goroutine.

Unlike a thread-local-error-carrier design, every call here returns an error
directly — the idiomatic Go equivalent of "read the last error from this
thread" is "check the return value of the call you just made".
*/
package sir

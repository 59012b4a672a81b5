// Command sirdemo is a basic example of initializing the library,
// configuring destinations, and emitting one message per severity level.
// It is a demonstration program, explicitly out of the core scope this
// module covers (see SPEC_FULL.md §6).
package main

import (
	"fmt"
	"os"

	"github.com/One-com/gone/sir"
)

func main() {
	cfg := sir.Config{
		Stdout: sir.DestinationConfig{
			Levels:  sir.Levels(sir.LevelDebug.Mask() | sir.LevelInfo.Mask() | sir.LevelNotice.Mask() | sir.LevelWarn.Mask()),
			Options: sir.Options(sir.OptNoTime | sir.OptNoPID),
		},
		Stderr: sir.DestinationConfig{
			Levels:  sir.Levels(sir.LevelError.Mask() | sir.LevelCritical.Mask() | sir.LevelAlert.Mask() | sir.LevelEmergency.Mask()),
			Options: sir.Options(sir.OptNoTime | sir.OptNoPID),
		},
		Syslog:      sir.SyslogConfig{Levels: sir.Levels(sir.LevelMaskNone)},
		ProcessName: "example",
	}

	if err := sir.Init(cfg); err != nil {
		reportError(err)
		os.Exit(1)
	}
	defer sir.Cleanup()

	handle, err := sir.AddFile("log-example.log", sir.Levels(sir.LevelMaskAll), sir.Options(sir.OptNoName))
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	defer sir.RemoveFile(handle)

	n := 12345
	somestr := "my string contents"
	f := 0.0009

	sir.Debug("debug-level message: {n=%d, somestr='%s', f=%.04f}", n, somestr, f)
	sir.Info("info-level message: {n=%d, somestr='%s', f=%.04f}", n, somestr, f)
	sir.Notice("notice-level message: {n=%d, somestr='%s', f=%.04f}", n, somestr, f)
	sir.Warn("warning-level message: {n=%d, somestr='%s', f=%.04f}", n, somestr, f)
	sir.ErrorLog("error-level message: {n=%d, somestr='%s', f=%.04f}", n, somestr, f)
	sir.Critical("critical error-level message: {n=%d, somestr='%s', f=%.04f}", n, somestr, f)
	sir.Alert("alert-level message: {n=%d, somestr='%s', f=%.04f}", n, somestr, f)
	sir.Emergency("emergency-level message: {n=%d, somestr='%s', f=%.04f}", n, somestr, f)
}

func reportError(err *sir.Error) {
	fmt.Fprintf(os.Stderr, "sir error: (%d, %s)\n", err.Kind, err.Error())
}

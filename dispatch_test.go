package sir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetLib restores the process-wide singleton to its zero state between
// tests; production callers never need this since Init/Cleanup is meant to
// run once per process, but the test suite exercises the lifecycle many
// times over.
func resetLib(t *testing.T) {
	t.Helper()
	Cleanup()
	lib.mu.Lock()
	lib.files = newFileCache()
	lib.styles = newStyleTable()
	lib.initialized = false
	lib.mu.Unlock()
}

func TestInitCleanupLifecycle(t *testing.T) {
	resetLib(t)
	cfgNoSyslog := Config{ProcessName: "testproc", Syslog: SyslogConfig{Levels: Levels(LevelMaskNone)}}
	require.Nil(t, Init(cfgNoSyslog))

	err := Init(Config{})
	require.NotNil(t, err)
	assert.Equal(t, ErrAlreadyInitialized, err.Kind, "second Init should fail")

	require.Nil(t, Cleanup())

	err = Cleanup()
	require.NotNil(t, err)
	assert.Equal(t, ErrNotReady, err.Kind, "second Cleanup should fail")

	err = Debug("hello")
	require.NotNil(t, err)
	assert.Equal(t, ErrNotReady, err.Kind, "logging after Cleanup should fail")
}

func TestNoDestinationAdmitsLevel(t *testing.T) {
	resetLib(t)
	cfg := Config{
		Stdout: DestinationConfig{Levels: Levels(LevelMaskNone)},
		Stderr: DestinationConfig{Levels: Levels(LevelMaskNone)},
		Syslog: SyslogConfig{Levels: Levels(LevelMaskNone)},
	}
	require.Nil(t, Init(cfg))
	defer Cleanup()

	err := Info("x")
	require.NotNil(t, err)
	assert.Equal(t, ErrNoDestination, err.Kind)
}

func TestAddFileWritesOneLinePerLevel(t *testing.T) {
	resetLib(t)
	cfg := Config{ProcessName: "example", Syslog: SyslogConfig{Levels: Levels(LevelMaskNone)}}
	require.Nil(t, Init(cfg))
	defer Cleanup()

	dir := t.TempDir()
	path := filepath.Join(dir, "log-example.log")
	h, err := AddFile(path, UseDefaultLevels(), Options(OptNoName))
	require.Nil(t, err)
	defer RemoveFile(h)

	for _, l := range []Level{LevelDebug, LevelInfo, LevelNotice, LevelWarn, LevelError, LevelCritical, LevelAlert, LevelEmergency} {
		lerr := log(2, l, "%s message: { n=%d, s='%s', f=%.04f }", "test", 123456789, "This is a test string", 0.0009)
		require.Nilf(t, lerr, "log(%v)", l)
	}

	data, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.NotEmpty(t, data, "expected non-empty log file")
	assert.Equal(t, 8, strings.Count(string(data), "test message: {"), "expected one line per level")
}

func TestBoundedMessageTruncation(t *testing.T) {
	resetLib(t)
	require.Nil(t, Init(Config{Syslog: SyslogConfig{Levels: Levels(LevelMaskNone)}}))
	defer Cleanup()

	long := make([]byte, maxMessage*2)
	for i := range long {
		long[i] = 'a'
	}
	msg := truncateMessage(string(long))
	assert.Len(t, msg, maxMessage)
}

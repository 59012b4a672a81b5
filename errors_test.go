package sir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := newError(ErrCacheFull)
	assert.True(t, errors.Is(err, ErrCacheFull.AsKind()))
	assert.False(t, errors.Is(err, ErrDuplicateFile.AsKind()))
}

func TestPlatformErrorUnwrapsOSCause(t *testing.T) {
	cause := errors.New("disk full")
	err := newPlatformError(cause)
	require.Equal(t, ErrPlatform, err.Kind)
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "disk full")
}

func TestLastErrorTracksMostRecentCallOnGoroutine(t *testing.T) {
	resetLib(t)
	require.Nil(t, Init(Config{Syslog: SyslogConfig{Levels: Levels(LevelMaskNone)}}))
	defer Cleanup()

	_, err := AddFile("/nonexistent-dir-xyz/does-not-exist.log", UseDefaultLevels(), UseDefaultOptions())
	require.NotNil(t, err)

	last := LastError()
	require.NotNil(t, last)
	assert.Equal(t, ErrPlatform, last.Kind)
}

func TestNilErrorStringsAsNoError(t *testing.T) {
	var err *Error
	assert.Equal(t, ErrNone.String(), err.Error())
	assert.Nil(t, err.Unwrap())
}

package sir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sir.toml")
	contents := `
process_name = "svc"

[stdout]
levels = "debug,info,notice,warn"

[stderr]
levels = "error,critical,alert,emergency"

[syslog]
levels = "none"
include_pid = false
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "svc", cfg.ProcessName)

	want := LevelDebug.bit() | LevelInfo.bit() | LevelNotice.bit() | LevelWarn.bit()
	got := cfg.Stdout.Levels.resolve(0)
	assert.Equal(t, want, got)
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sir.yaml")
	contents := "process_name: svc\nstdout:\n  levels: \"warn,error\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := LevelWarn.bit() | LevelError.bit()
	got := cfg.Stdout.Levels.resolve(0)
	assert.Equal(t, want, got)
}

func TestInitFromEnv(t *testing.T) {
	t.Setenv("SIRTEST_PROCESS_NAME", "envproc")
	t.Setenv("SIRTEST_STDOUT_LEVELS", "debug,info")
	t.Setenv("SIRTEST_SYSLOG_LEVELS", "none")

	cfg, err := InitFromEnv("SIRTEST")
	require.NoError(t, err)
	assert.Equal(t, "envproc", cfg.ProcessName)

	want := LevelDebug.bit() | LevelInfo.bit()
	got := cfg.Stdout.Levels.resolve(0)
	assert.Equal(t, want, got)
}

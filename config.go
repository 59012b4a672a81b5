package sir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cast"
	yaml "gopkg.in/yaml.v2"
)

// ParseLevelMask parses a comma-separated list of level names (or "all" /
// "none" / "default") into a LevelMask, the form most configuration sources
// hand the library.
func ParseLevelMask(csv string) (LevelMask, error) {
	csv = strings.TrimSpace(csv)
	switch lower(csv) {
	case "":
		return LevelMaskNone, nil
	case "all":
		return LevelMaskAll, nil
	case "none":
		return LevelMaskNone, nil
	case "default":
		return LevelMaskDefault, nil
	}
	var mask LevelMask
	for _, part := range strings.Split(csv, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		lvl, ok := ParseLevel(name)
		if !ok {
			return 0, fmt.Errorf("sir: unknown level %q", name)
		}
		mask |= lvl.bit()
	}
	return mask, nil
}

// rawConfig is the wire shape decoded from a TOML/YAML file before being
// turned into a Config; level/option fields are plain strings there so a
// human can write "warn,error,critical" instead of a numeric mask.
type rawConfig struct {
	ProcessName string `mapstructure:"process_name" toml:"process_name" yaml:"process_name"`
	Stdout      struct {
		Levels string `mapstructure:"levels" toml:"levels" yaml:"levels"`
	} `mapstructure:"stdout" toml:"stdout" yaml:"stdout"`
	Stderr struct {
		Levels string `mapstructure:"levels" toml:"levels" yaml:"levels"`
	} `mapstructure:"stderr" toml:"stderr" yaml:"stderr"`
	Syslog struct {
		Levels     string `mapstructure:"levels" toml:"levels" yaml:"levels"`
		IncludePID bool   `mapstructure:"include_pid" toml:"include_pid" yaml:"include_pid"`
		Identity   string `mapstructure:"identity" toml:"identity" yaml:"identity"`
	} `mapstructure:"syslog" toml:"syslog" yaml:"syslog"`
}

func (r rawConfig) toConfig() (Config, error) {
	var cfg Config
	cfg.ProcessName = r.ProcessName

	stdoutMask, err := ParseLevelMask(r.Stdout.Levels)
	if err != nil {
		return cfg, err
	}
	cfg.Stdout.Levels = levelConfigFromMask(stdoutMask, r.Stdout.Levels)

	stderrMask, err := ParseLevelMask(r.Stderr.Levels)
	if err != nil {
		return cfg, err
	}
	cfg.Stderr.Levels = levelConfigFromMask(stderrMask, r.Stderr.Levels)

	syslogMask, err := ParseLevelMask(r.Syslog.Levels)
	if err != nil {
		return cfg, err
	}
	cfg.Syslog.Levels = levelConfigFromMask(syslogMask, r.Syslog.Levels)
	cfg.Syslog.IncludePID = r.Syslog.IncludePID
	cfg.Syslog.Identity = r.Syslog.Identity
	return cfg, nil
}

func levelConfigFromMask(mask LevelMask, raw string) LevelConfig {
	if strings.TrimSpace(raw) == "" {
		return UseDefaultLevels()
	}
	return Levels(mask)
}

// LoadConfig reads path (TOML or YAML, by extension) and decodes it into a
// Config via go-toml/yaml.v2 plus mapstructure, the same config-loading
// stack used elsewhere in the broader example pack. It never calls Init
// itself; the caller decides when to apply the returned Config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var generic map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return Config{}, fmt.Errorf("sir: parsing %s: %w", path, err)
		}
		generic = tree.ToMap()
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return Config{}, fmt.Errorf("sir: parsing %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("sir: unsupported config extension %q", filepath.Ext(path))
	}

	var raw rawConfig
	if err := mapstructure.Decode(generic, &raw); err != nil {
		return Config{}, fmt.Errorf("sir: decoding %s: %w", path, err)
	}
	return raw.toConfig()
}

// InitFromEnv builds a Config from environment variables named
// "<prefix>_STDOUT_LEVELS", "<prefix>_STDERR_LEVELS", "<prefix>_SYSLOG_LEVELS",
// and "<prefix>_PROCESS_NAME", using permissive string coercion for anything
// that isn't already level-name text (e.g. a bare integer bitmask).
func InitFromEnv(prefix string) (Config, error) {
	var cfg Config
	cfg.ProcessName = os.Getenv(prefix + "_PROCESS_NAME")

	for _, dest := range []struct {
		env    string
		target *LevelConfig
	}{
		{prefix + "_STDOUT_LEVELS", &cfg.Stdout.Levels},
		{prefix + "_STDERR_LEVELS", &cfg.Stderr.Levels},
		{prefix + "_SYSLOG_LEVELS", &cfg.Syslog.Levels},
	} {
		val, ok := os.LookupEnv(dest.env)
		if !ok || val == "" {
			*dest.target = UseDefaultLevels()
			continue
		}
		if mask, err := ParseLevelMask(val); err == nil {
			*dest.target = Levels(mask)
			continue
		}
		// Fall back to permissive numeric coercion for a raw bitmask.
		n, err := cast.ToUint32E(val)
		if err != nil {
			return Config{}, fmt.Errorf("sir: %s=%q is neither a level list nor a numeric mask: %w", dest.env, val, err)
		}
		*dest.target = Levels(LevelMask(n))
	}
	return cfg, nil
}

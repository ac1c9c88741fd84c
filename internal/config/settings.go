package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override,
// e.g. EXPLAINED2DOT_COMPACT=true.
const EnvPrefix = "EXPLAINED2DOT"

// Setting keys. Flags bind to these names with dashes.
const (
	KeyExcludeMVC    = "exclude_mvc"
	KeyCompact       = "compact"
	KeyExcludeResult = "exclude_result"
	KeyRules         = "rules"
	KeyVerbose       = "verbose"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyFormat        = "format"
)

// Settings are the resolved invocation settings: flag values, overridden
// by environment variables when the flag was not set.
type Settings struct {
	ExcludeMVC    bool
	Compact       bool
	ExcludeResult bool
	RulesPath     string
	Verbose       bool
	LogLevel      string
	LogFormat     string
	Format        string
}

// NewViper returns a viper instance that reads EXPLAINED2DOT_* variables.
// Each command invocation gets its own instance.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyFormat, "text")
	return v
}

// Load reads and validates settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		ExcludeMVC:    v.GetBool(KeyExcludeMVC),
		Compact:       v.GetBool(KeyCompact),
		ExcludeResult: v.GetBool(KeyExcludeResult),
		RulesPath:     v.GetString(KeyRules),
		Verbose:       v.GetBool(KeyVerbose),
		LogLevel:      strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:     strings.ToLower(v.GetString(KeyLogFormat)),
		Format:        strings.ToLower(v.GetString(KeyFormat)),
	}
	if s.Verbose {
		s.LogLevel = "debug"
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Settings{}, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s.LogLevel)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return Settings{}, fmt.Errorf("invalid log format %q (want text or json)", s.LogFormat)
	}
	switch s.Format {
	case "text", "json":
	default:
		return Settings{}, fmt.Errorf("invalid output format %q (want text or json)", s.Format)
	}
	return s, nil
}

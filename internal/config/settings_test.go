package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, Settings{LogLevel: "warn", LogFormat: "text", Format: "text"}, s)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("EXPLAINED2DOT_COMPACT", "true")
	t.Setenv("EXPLAINED2DOT_EXCLUDE_MVC", "1")
	t.Setenv("EXPLAINED2DOT_LOG_FORMAT", "JSON")
	t.Setenv("EXPLAINED2DOT_RULES", "/etc/rules.yaml")

	s, err := Load(NewViper())
	require.NoError(t, err)
	assert.True(t, s.Compact)
	assert.True(t, s.ExcludeMVC)
	assert.False(t, s.ExcludeResult)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, "/etc/rules.yaml", s.RulesPath)
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("EXPLAINED2DOT_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "warn", "")
	require.NoError(t, flags.Parse([]string{"--log-level", "info"}))

	v := NewViper()
	require.NoError(t, v.BindPFlag(KeyLogLevel, flags.Lookup("log-level")))

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
}

func TestLoad_VerboseForcesDebug(t *testing.T) {
	v := NewViper()
	v.Set(KeyVerbose, true)
	v.Set(KeyLogLevel, "error")

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr string
	}{
		{KeyLogLevel, "trace", "invalid log level"},
		{KeyLogFormat, "xml", "invalid log format"},
		{KeyFormat, "yaml", "invalid output format"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := NewViper()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

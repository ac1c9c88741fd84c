// Package config resolves what a conversion run is configured with: the
// parse rules and node colors from an optional YAML rule file, and the
// invocation settings from flags and EXPLAINED2DOT_* environment variables.
package config

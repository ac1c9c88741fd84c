package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brics-db/explained2dot/internal/dot"
	"github.com/brics-db/explained2dot/internal/explain"
)

// File is the YAML rule file. Every key is optional; omitted keys keep
// the defaults.
//
//	ignored_prefixes: ["+", "mal", "barrier ", "exit ", "end "]
//	ignored_operators: [querylog.define, language.dataflow, language.pass]
//	root_marker: sql.mvc
//	fill_colors:
//	  calc: khaki
type File struct {
	// IgnoredPrefixes replaces the list of line prefixes that are dropped.
	IgnoredPrefixes []string `yaml:"ignored_prefixes"`

	// IgnoredOperators replaces the list of operators whose lines are dropped.
	IgnoredOperators []string `yaml:"ignored_operators"`

	// IgnoredNames replaces the reserved operand names.
	IgnoredNames []string `yaml:"ignored_names"`

	// RootMarker is the operator of the distinguished root call.
	RootMarker *string `yaml:"root_marker"`

	// ResultSetMarker prefixes calls without a return list. Empty disables.
	ResultSetMarker *string `yaml:"result_set_marker"`

	// AutoCommitMarker on the first line shifts the header. Empty disables.
	AutoCommitMarker *string `yaml:"auto_commit_marker"`

	// FillColors is merged over the default module fill colors.
	FillColors map[string]string `yaml:"fill_colors"`

	// FontColors is merged over the default module font colors.
	FontColors map[string]string `yaml:"font_colors"`
}

// Rules is the resolved configuration for one conversion.
type Rules struct {
	Parse explain.Rules
	Style dot.Style
}

// Default returns the built-in rules.
func Default() Rules {
	return Rules{
		Parse: explain.DefaultRules(),
		Style: dot.DefaultStyle(),
	}
}

// LoadRules reads a rule file and layers it over the defaults. An empty
// path returns the defaults.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rule file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes rule file content and layers it over the defaults.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func ParseRules(data []byte) (Rules, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateFile(&f); err != nil {
		return Rules{}, fmt.Errorf("invalid rule file: %w", err)
	}
	return f.Apply(Default()), nil
}

// Apply returns base with every key set in f replacing or extending it.
func (f *File) Apply(base Rules) Rules {
	out := base
	if f.IgnoredPrefixes != nil {
		out.Parse.IgnoredPrefixes = f.IgnoredPrefixes
	}
	if f.IgnoredOperators != nil {
		out.Parse.IgnoredOperators = f.IgnoredOperators
	}
	if f.IgnoredNames != nil {
		out.Parse.IgnoredNames = f.IgnoredNames
	}
	if f.RootMarker != nil {
		out.Parse.RootMarker = *f.RootMarker
	}
	if f.ResultSetMarker != nil {
		out.Parse.ResultSetMarker = *f.ResultSetMarker
	}
	if f.AutoCommitMarker != nil {
		out.Parse.AutoCommitMarker = *f.AutoCommitMarker
	}
	out.Style = base.Style.Merge(dot.Style{
		FillColors: f.FillColors,
		FontColors: f.FontColors,
	})
	return out
}

// validateFile checks the keys that are present.
func validateFile(f *File) error {
	if f.RootMarker != nil && strings.TrimSpace(*f.RootMarker) == "" {
		return fmt.Errorf("root_marker must be non-empty")
	}
	for i, p := range f.IgnoredPrefixes {
		if p == "" {
			return fmt.Errorf("ignored_prefixes[%d]: empty prefix would drop every line", i)
		}
	}
	for i, op := range f.IgnoredOperators {
		if op == "" {
			return fmt.Errorf("ignored_operators[%d]: empty operator would drop every line", i)
		}
	}
	if err := validateColors("fill_colors", f.FillColors); err != nil {
		return err
	}
	return validateColors("font_colors", f.FontColors)
}

func validateColors(key string, colors map[string]string) error {
	modules := make([]string, 0, len(colors))
	for m := range colors {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	for _, m := range modules {
		if m == "" {
			return fmt.Errorf("%s: module name is required", key)
		}
		c := colors[m]
		if c == "" {
			return fmt.Errorf("%s.%s: color is required", key, m)
		}
		if strings.ContainsAny(c, " \t\"[];,=") {
			return fmt.Errorf("%s.%s: %q is not a plain color name", key, m, c)
		}
	}
	return nil
}

package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brics-db/explained2dot/internal/dot"
	"github.com/brics-db/explained2dot/internal/explain"
)

// ConvertOptions holds flags for the conversion.
type ConvertOptions struct {
	*RootOptions
	Output string // output file path; stdout if empty
}

func runConvert(opts *ConvertOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    "text",
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Settings.Verbose,
	}

	if opts.Output != "" && sameFile(opts.Output, path) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("output %s would overwrite the explain file", opts.Output))
	}

	res, err := loadTrace(opts.RootOptions, path)
	if err != nil {
		return err
	}

	s := opts.Settings
	dotOpts := dot.DefaultOptions()
	dotOpts.Style = opts.Rules.Style
	dotOpts.Compact = s.Compact
	dotOpts.ExcludeRoot = s.ExcludeMVC
	dotOpts.ExcludeResult = s.ExcludeResult
	dotOpts.ResultSetLabel = opts.Rules.Parse.ResultSetMarker

	// Output is written only after rendering succeeded.
	var buf bytes.Buffer
	if err := dot.Write(&buf, graphName(path), res.Graph, res.Registry, dotOpts); err != nil {
		return WrapExitError(ExitCommandError, "rendering graph", err)
	}

	if opts.Output == "" {
		if _, err := formatter.Writer.Write(buf.Bytes()); err != nil {
			return WrapExitError(ExitCommandError, "writing output", err)
		}
		return nil
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
		return WrapExitError(ExitCommandError, "writing output file", err)
	}
	formatter.VerboseLog("Wrote %d node(s) to %s", len(res.Graph.Nodes()), opts.Output)
	return nil
}

// loadTrace reads and parses an explain file with the resolved rules.
// A missing file is a command error; a malformed trace is a failure.
func loadTrace(opts *RootOptions, path string) (*explain.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "reading explain file", err)
	}

	res, err := explain.Parse(string(data), explain.Options{
		Rules:       opts.Rules.Parse,
		ExcludeRoot: opts.Settings.ExcludeMVC,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, WrapExitError(ExitFailure, fmt.Sprintf("parsing %s", path), err)
	}

	opts.Logger.Info("trace parsed",
		"file", path,
		"function", res.Function,
		"statements", res.Statements,
		"nodes", len(res.Graph.Nodes()),
		"warnings", len(res.Warnings))
	return res, nil
}

// sameFile reports whether both paths name an existing, identical file.
func sameFile(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}

// graphName is the file name without directory and extension.
func graphName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brics-db/explained2dot/internal/explain"
	"github.com/brics-db/explained2dot/internal/ir"
)

// Summary describes a parsed trace without rendering it.
type Summary struct {
	Function      string   `json:"function"`
	Statements    int      `json:"statements"`
	Declarations  int      `json:"declarations"`
	Nodes         int      `json:"nodes"`
	Arguments     int      `json:"arguments"`
	Literals      int      `json:"literals"`
	Reassignments int      `json:"reassignments"`
	InputEdges    int      `json:"input_edges"`
	OutputEdges   int      `json:"output_edges"`
	Root          ir.ID    `json:"root,omitempty"`
	Excised       ir.ID    `json:"excised,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	Fingerprint   string   `json:"fingerprint"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <explained-file>",
		Short: "Summarize a parsed explain trace",
		Long: `Parse an explain trace and report what the graph would contain: counts of
call nodes, arguments, literals, reassignments and edges, the root node,
any warnings, and a fingerprint that is stable across runs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInspect(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Settings.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Settings.Verbose,
	}

	res, err := loadTrace(opts, path)
	if err != nil {
		if formatter.Format == "json" {
			_ = formatter.ReportError(err)
		}
		return err
	}

	formatter.VerboseLog("Fingerprint domain: %s", ir.DomainGraph)
	return formatter.Success(Summarize(res))
}

// Summarize counts the parts of a parsed trace.
func Summarize(res *explain.Result) Summary {
	g := res.Graph
	s := Summary{
		Function:      res.Function,
		Statements:    res.Statements,
		Declarations:  res.Registry.Declarations(),
		Nodes:         len(g.Nodes()),
		Arguments:     len(g.Arguments()),
		Literals:      len(g.Literals()),
		Reassignments: len(g.Reassignments()),
		InputEdges:    len(g.InputEdges()),
		OutputEdges:   len(g.OutputEdges()),
		Root:          g.Root(),
		Excised:       res.Excised,
		Fingerprint:   g.Fingerprint(res.Registry),
	}
	for _, w := range res.Warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	return s
}

// String renders the summary as aligned text lines without a trailing
// newline.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Function:      %s\n", s.Function)
	fmt.Fprintf(&b, "Statements:    %d\n", s.Statements)
	fmt.Fprintf(&b, "Declarations:  %d\n", s.Declarations)
	fmt.Fprintf(&b, "Nodes:         %d\n", s.Nodes)
	fmt.Fprintf(&b, "Arguments:     %d\n", s.Arguments)
	fmt.Fprintf(&b, "Literals:      %d\n", s.Literals)
	fmt.Fprintf(&b, "Reassignments: %d\n", s.Reassignments)
	fmt.Fprintf(&b, "Input edges:   %d\n", s.InputEdges)
	fmt.Fprintf(&b, "Output edges:  %d\n", s.OutputEdges)
	if s.Root.IsValid() {
		fmt.Fprintf(&b, "Root:          N%s\n", s.Root)
	} else {
		fmt.Fprintln(&b, "Root:          (none)")
	}
	if s.Excised.IsValid() {
		fmt.Fprintf(&b, "Excised:       A%s\n", s.Excised)
	}
	fmt.Fprintf(&b, "Fingerprint:   %s", s.Fingerprint)
	if len(s.Warnings) > 0 {
		fmt.Fprintf(&b, "\n\nWarnings:")
		for _, warn := range s.Warnings {
			fmt.Fprintf(&b, "\n  %s", warn)
		}
	}
	return b.String()
}

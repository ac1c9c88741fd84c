// Command explained2dot converts MonetDB EXPLAIN output to Graphviz DOT.
package main

import (
	"io"
	"os"

	"github.com/brics-db/explained2dot/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		report := &cli.OutputFormatter{Format: "text", Writer: stderr}
		_ = report.ReportError(err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

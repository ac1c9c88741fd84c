package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brics-db/explained2dot/internal/config"
)

// RootOptions holds the settings resolved for one invocation. They are
// filled in by the root command's PersistentPreRunE before any RunE runs.
type RootOptions struct {
	Settings config.Settings
	Rules    config.Rules
	Logger   *slog.Logger

	v *viper.Viper
}

// flagKeys maps flag names to their setting keys.
var flagKeys = map[string]string{
	"exclude-mvc":    config.KeyExcludeMVC,
	"compact":        config.KeyCompact,
	"exclude-result": config.KeyExcludeResult,
	"rules":          config.KeyRules,
	"verbose":        config.KeyVerbose,
	"log-level":      config.KeyLogLevel,
	"log-format":     config.KeyLogFormat,
	"format":         config.KeyFormat,
}

// NewRootCommand creates the explained2dot command. Run without a
// subcommand it converts one explain file to DOT.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	convert := &ConvertOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "explained2dot [flags] <explained-file>",
		Short: "Convert MonetDB EXPLAIN output to Graphviz DOT",
		Long: `Convert the MAL plan printed by MonetDB's EXPLAIN into a Graphviz digraph.

Call statements become boxes colored by module, variables become ellipses
labeled with name and type, and literal values become stars. The DOT text is
written to stdout unless --output is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(convert, args[0], cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging (same as --log-level debug)")
	cmd.PersistentFlags().String("format", "text", "output format for inspect (json|text)")
	cmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().String("log-format", "text", "log format (text|json)")
	cmd.PersistentFlags().String("rules", "", "YAML rule file overriding parse rules and colors")
	cmd.PersistentFlags().BoolP("exclude-mvc", "m", false, "exclude the sql.mvc root node and its edges")

	// Conversion flags
	cmd.Flags().BoolP("compact", "c", false, "compact graph: tighter spacing, no argument text")
	cmd.Flags().BoolP("exclude-result", "r", false, "exclude the result set and its descriptor chain")
	cmd.Flags().StringVarP(&convert.Output, "output", "o", "", "output file path")

	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}

// resolve binds the flags of the executing command to a fresh viper
// instance, then loads settings, rules and the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	o.v = config.NewViper()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := o.v.BindPFlag(key, f); err != nil {
				return WrapExitError(ExitCommandError, "binding flag --"+name, err)
			}
		}
	}

	settings, err := config.Load(o.v)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid settings", err)
	}
	rules, err := config.LoadRules(settings.RulesPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading rules", err)
	}

	o.Settings = settings
	o.Rules = rules
	o.Logger = newLogger(settings.LogLevel, settings.LogFormat, cmd.ErrOrStderr())
	o.Logger.Debug("settings resolved",
		"exclude_mvc", settings.ExcludeMVC,
		"compact", settings.Compact,
		"exclude_result", settings.ExcludeResult,
		"rules", settings.RulesPath)
	return nil
}

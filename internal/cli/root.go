package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands. Empty values leave the
// loaded configuration untouched.
type RootOptions struct {
	ConfigFile string
	Port       string
	LogLevel   string
}

// NewRootCommand creates the combo-todo command. Running it without a
// subcommand starts the server.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "combo-todo",
		Short: "Fighting game technique tracker API",
		Long: `combo-todo serves a JSON API for tracking fighting game techniques,
each scored for movement, punishment, mixup and combo potential.

Configuration is read from defaults, then the file named by --config or
CONFIG_FILE, then environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to a .toml or .yaml config file")
	cmd.PersistentFlags().StringVar(&opts.Port, "port", "", "HTTP listen port (overrides SERVER_PORT)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug|info|warn|error (overrides LOG_LEVEL)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewVersionCommand(version))

	return cmd
}

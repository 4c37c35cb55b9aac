package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadcost/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent --config flag names a TOML file; without it the default
// location is used when present. Config is loaded once per invocation,
// before the selected subcommand runs, and the CLI logger is attached to
// the command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "roadcost compares patch repairs against a full-width treatment",
		Long: `roadcost reads a spreadsheet of pavement patches, prices repairing them
individually as unbound pavement against treating the whole span with an
alternative full-width method, and draws a schematic diagram of the road.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/roadcost/config.toml)")

	root.AddCommand(c.compareCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadcost/internal/server"
	"github.com/matzehuels/roadcost/pkg/cache"
	"github.com/matzehuels/roadcost/pkg/estimate"
	"github.com/matzehuels/roadcost/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		host    string
		port    int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the estimate HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ch, err := newCache(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			runner := estimate.NewRunner(ch, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"), c.Logger)
			defer runner.Close()

			observability.SetRequestHooks(&requestLogHooks{logger: c.Logger})
			srv := server.New(cfg, runner, c.Logger)

			printInfo("Serving on %s", StyleValue.Render("http://"+srv.Addr()))
			printKeyValue("Cache", cfg.Cache.Backend)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvaslayout/pkg/observability"
	"github.com/matzehuels/canvaslayout/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
		prefix  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layout passes over HTTP",
		Long: `Serve layout passes over HTTP.

Endpoints:
  GET  /healthz          liveness and version
  POST /v1/layout        {"scene": {...}, "width": "...", "height": "..."}
  POST /v1/layout/batch  {"scene": {...}, "sizes": [{"width": "...", "height": "..."}]}

Use --cache redis://host:6379/0 to share results between instances. Keys are
prefixed with --cache-prefix so the service and the CLI can use the same
backend without colliding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, backend, prefix, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&backend, "cache", "", "cache backend: none, file[:dir] or redis://host:port/db")
	cmd.Flags().StringVar(&prefix, "cache-prefix", defaultServePrefix, "prefix for the service's cache keys (empty shares keys with the CLI)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, backend, prefix string, noCache bool) error {
	runner, err := c.newRunner(ctx, backend, noCache, scopedKeyer(prefix))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if c.Verbose() {
		observability.NewLogHooks(c.Logger).Install()
		defer observability.Reset()
	}

	printInfo("Listening on %s", StyleValue.Render(addr))
	if err := server.New(runner, c.Logger).ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	printDetail("Server stopped")
	return nil
}

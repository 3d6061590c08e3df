package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/orchard/pkg/server"
)

// serveCommand starts the preview server for stream software.
func (c *CLI) serveCommand() *cobra.Command {
	var opts server.Options
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scenes over HTTP for stream software",
		Long: `Serve scenes over HTTP so broadcast tools can load them as image sources.

  GET /healthz
  GET /scenes
  GET /scenes/{scene}?format=gif&theme=midnight&player=osk

The data flags set the files every request renders from; requests pick
players, the theme preset and the format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			opts.Theme = c.theme
			srv := server.New(runner, opts)
			printInfo("Listening on %s", StyleLink.Render("http://"+opts.Addr))
			printDetail("Press Ctrl+C to stop")
			if err := srv.ListenAndServe(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.Results, "results", "", "bracket results file")
	cmd.Flags().StringVar(&opts.Roster, "roster", "", "roster file")
	cmd.Flags().StringVar(&opts.Donors, "donors", "", "donors file")
	cmd.Flags().StringVar(&opts.Tournament, "tournament", "", "Matcherino tournament id for live donors")
	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	orchardio "github.com/matzehuels/orchard/pkg/io"
	"github.com/matzehuels/orchard/pkg/pipeline"
	"github.com/matzehuels/orchard/pkg/tournament"
)

// defaultDonorsFile is where "donors fetch" writes by default.
const defaultDonorsFile = "donors.json"

// donorSource holds the flags selecting the donor list.
type donorSource struct {
	file       string
	tournament string
}

func (o *donorSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.file, "donors", "", "donors file written by \"donors fetch\"")
	cmd.Flags().StringVar(&o.tournament, "tournament", "", "Matcherino tournament id, used when --donors is not given")
}

// donorsCommand creates the donors command with fetch, scroll and wall subcommands.
func (c *CLI) donorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donors",
		Short: "Fetch prize-pool donors and draw the donor scroll",
	}
	cmd.AddCommand(c.donorsFetchCommand())
	cmd.AddCommand(c.donorsSceneCommand("scroll", pipeline.SceneDonorScroll, "Animate the scrolling donor list"))
	cmd.AddCommand(c.donorsSceneCommand("wall", pipeline.SceneDonorWall, "Animate the donor scroll over the wall background"))
	return cmd
}

func (c *CLI) donorsFetchCommand() *cobra.Command {
	var output string
	var refresh bool
	cmd := &cobra.Command{
		Use:   "fetch [tournament-id]",
		Short: "Download the contribution list of a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDonorsFetch(cmd.Context(), args[0], output, refresh)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", defaultDonorsFile, "output file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cached contribution list")
	return cmd
}

func (c *CLI) runDonorsFetch(ctx context.Context, id, output string, refresh bool) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching contributions of %s...", id))
	spinner.Start()
	donors, err := runner.Deps.Matcherino.FetchDonors(ctx, id, refresh)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.Stop()

	if err := orchardio.ExportDonors(donors, output); err != nil {
		return err
	}
	printSuccess("Fetched %s donors", StyleNumber.Render(fmt.Sprint(len(donors))))
	printKeyValue("Total", tournament.FormatAmount(tournament.Total(donors)))
	printFile(output)
	printNextStep("Draw the scroll", "orchard donors scroll --donors "+output)
	return nil
}

func (c *CLI) donorsSceneCommand(use, scene, short string) *cobra.Command {
	var so sceneOpts
	var src donorSource
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScene(cmd.Context(), pipeline.Options{
				Scene:      scene,
				Donors:     src.file,
				Tournament: src.tournament,
			}, &so)
		},
	}
	so.register(cmd, scene)
	src.register(cmd)
	return cmd
}

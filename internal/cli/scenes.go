package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	orchardio "github.com/matzehuels/orchard/pkg/io"
	"github.com/matzehuels/orchard/pkg/pipeline"
)

// topologyFormats are the bracket outputs that need no drawing.
var topologyFormats = []string{pipeline.FormatSVG, pipeline.FormatDOT, pipeline.FormatJSON}

// bracketCommand creates the bracket scene command.
func (c *CLI) bracketCommand() *cobra.Command {
	var so sceneOpts
	cmd := &cobra.Command{
		Use:   "bracket [results.json]",
		Short: "Draw the double-elimination bracket",
		Long: `Draw the double-elimination bracket from a results file.

The results file maps slot names ("Winners Final", "Grand Final", ...) to
the two entries of the match. Slots without results show TBD.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScene(cmd.Context(), pipeline.Options{
				Scene:   pipeline.SceneBracket,
				Results: args[0],
			}, &so)
		},
	}
	so.register(cmd, pipeline.SceneBracket)
	return cmd
}

// topologyCommand exports the bracket's structure without drawing it.
func (c *CLI) topologyCommand() *cobra.Command {
	var so sceneOpts
	cmd := &cobra.Command{
		Use:   "topology [results.json]",
		Short: "Export the bracket structure as SVG, DOT or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if so.formats == "" {
				so.formats = topologyFormats[0]
			}
			for _, f := range parseFormats(so.formats) {
				if !isTopologyFormat(f) {
					return fmt.Errorf("invalid format: %s (must be one of %v)", f, topologyFormats)
				}
			}
			return c.runScene(cmd.Context(), pipeline.Options{
				Scene:   pipeline.SceneBracket,
				Results: args[0],
			}, &so)
		},
	}
	cmd.Flags().StringVarP(&so.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&so.formats, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().BoolVar(&so.refresh, "refresh", false, "bypass cached artifacts")
	return cmd
}

func isTopologyFormat(f string) bool {
	for _, t := range topologyFormats {
		if f == t {
			return true
		}
	}
	return false
}

// playerOpts holds the flags of commands that draw roster players.
type playerOpts struct {
	roster string
	seed   int
	flavor string
}

func (o *playerOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.roster, "roster", "", "roster file (.yaml, .json) for seeds, flavour text and commentators")
	cmd.Flags().IntVar(&o.seed, "seed", 0, "seed shown on the card banner (overrides the roster)")
	cmd.Flags().StringVar(&o.flavor, "flavor", "", "flavour line under the stats (overrides the roster)")
}

// cardCommand creates the card command with front, back and flip subcommands.
func (c *CLI) cardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Draw player cards",
	}
	cmd.AddCommand(c.cardPlayerCommand("front", pipeline.SceneCardFront, "Draw the front of a player card"))
	cmd.AddCommand(c.cardBackCommand())
	cmd.AddCommand(c.cardPlayerCommand("flip", pipeline.SceneCardFlip, "Animate a card turning from back to front"))
	return cmd
}

func (c *CLI) cardPlayerCommand(use, scene, short string) *cobra.Command {
	var so sceneOpts
	var po playerOpts
	cmd := &cobra.Command{
		Use:   use + " [player]",
		Short: short,
		Long: short + `.

The player is a profile username, a user id, or a seed when --roster is
given. Unknown or unreachable profiles are drawn as a placeholder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScene(cmd.Context(), pipeline.Options{
				Scene:   scene,
				Players: args,
				Roster:  po.roster,
				Seed:    po.seed,
				Flavor:  po.flavor,
			}, &so)
		},
	}
	so.register(cmd, scene)
	po.register(cmd)
	return cmd
}

func (c *CLI) cardBackCommand() *cobra.Command {
	var so sceneOpts
	cmd := &cobra.Command{
		Use:   "back",
		Short: "Draw the shared back of the player cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScene(cmd.Context(), pipeline.Options{Scene: pipeline.SceneCardBack}, &so)
		},
	}
	so.register(cmd, pipeline.SceneCardBack)
	return cmd
}

// versusCommand creates the versus scene command.
func (c *CLI) versusCommand() *cobra.Command {
	var so sceneOpts
	var po playerOpts
	var pick bool
	cmd := &cobra.Command{
		Use:   "versus [left] [right]",
		Short: "Animate two player cards facing each other",
		Long: `Animate two player cards facing each other over the background.

Pass the two players as arguments, or use --pick with --roster to choose
them interactively.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if pick {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			players := args
			if pick {
				if po.roster == "" {
					return fmt.Errorf("--pick needs --roster")
				}
				roster, err := orchardio.ImportRoster(po.roster)
				if err != nil {
					return err
				}
				picked, err := pickPlayers(roster.Players, 2)
				if err != nil {
					return err
				}
				if picked == nil {
					printInfo("No players selected")
					return nil
				}
				players = picked
			}
			return c.runScene(cmd.Context(), pipeline.Options{
				Scene:   pipeline.SceneVersus,
				Players: players,
				Roster:  po.roster,
			}, &so)
		},
	}
	so.register(cmd, pipeline.SceneVersus)
	cmd.Flags().StringVar(&po.roster, "roster", "", "roster file (.yaml, .json) with seeds and flavour text")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose the players from the roster interactively")
	return cmd
}

// commentaryCommand creates the commentary panel command.
func (c *CLI) commentaryCommand() *cobra.Command {
	var so sceneOpts
	var roster string
	cmd := &cobra.Command{
		Use:   "commentary [commentator...]",
		Short: "Draw the commentator panel",
		Long: `Draw the commentator panel with avatars, names and socials.

Commentators given as arguments override the roster's line-up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScene(cmd.Context(), pipeline.Options{
				Scene:        pipeline.SceneCommentary,
				Commentators: args,
				Roster:       roster,
			}, &so)
		},
	}
	so.register(cmd, pipeline.SceneCommentary)
	cmd.Flags().StringVar(&roster, "roster", "", "roster file (.yaml, .json) listing the commentators")
	return cmd
}

// posterCommand creates the promotional poster command.
func (c *CLI) posterCommand() *cobra.Command {
	var so sceneOpts
	cmd := &cobra.Command{
		Use:   "poster",
		Short: "Draw the promotional poster with a sign-up QR code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScene(cmd.Context(), pipeline.Options{Scene: pipeline.ScenePoster}, &so)
		},
	}
	so.register(cmd, pipeline.ScenePoster)
	return cmd
}

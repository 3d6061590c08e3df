package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orchard/pkg/pipeline"
	"github.com/matzehuels/orchard/pkg/theme"
)

// themesCommand lists the built-in theme presets and the scenes.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List theme presets and the scenes they style",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := themeRows()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, themeTable(rows))
			printNewline()
			printInfo("Scenes")
			for _, s := range pipeline.Scenes() {
				printKeyValue(s, fmt.Sprint(pipeline.SceneFormats(s)))
			}
			printNewline()
			printNextStep("Use a theme", "orchard bracket results.json --theme midnight")
			return nil
		},
	}
}

// themeRows describes every preset: name, bracket size, card size and hash.
func themeRows() ([][]string, error) {
	var rows [][]string
	for _, name := range theme.PresetNames() {
		th, err := theme.Preset(name)
		if err != nil {
			return nil, err
		}
		b, cd := th.Bracket, th.Card
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d×%d", b.Width, b.Height),
			fmt.Sprintf("%d×%d", cd.Width, cd.Height),
			th.Palette.Win.String(),
			th.Hash()[:8],
		})
	}
	return rows, nil
}

func themeTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Theme", "Bracket", "Card", "Win", "Hash").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		}).
		Render()
}

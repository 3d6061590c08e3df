package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orchard/pkg/theme"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for orchard.

To load completions:

Bash:
  $ source <(orchard completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ orchard completion bash > /etc/bash_completion.d/orchard
  # macOS:
  $ orchard completion bash > $(brew --prefix)/etc/bash_completion.d/orchard

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ orchard completion zsh > "${fpath[1]}/_orchard"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ orchard completion fish | source

  # To load completions for each session, execute once:
  $ orchard completion fish > ~/.config/fish/completions/orchard.fish

PowerShell:
  PS> orchard completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> orchard completion powershell > orchard.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeThemes offers the theme presets for --theme; theme files fall
// back to file completion.
func completeThemes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range theme.PresetNames() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return []string{"toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

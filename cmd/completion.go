package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script",
	Long: `Generate shell completion script for mediaforge.

To load completions:

Bash:
  $ source <(mediaforge completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ mediaforge completion bash > /etc/bash_completion.d/mediaforge
  # macOS:
  $ mediaforge completion bash > $(brew --prefix)/etc/bash_completion.d/mediaforge

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ mediaforge completion zsh > "${fpath[1]}/_mediaforge"

Fish:
  $ mediaforge completion fish | source

  # To load completions for each session, execute once:
  $ mediaforge completion fish > ~/.config/fish/completions/mediaforge.fish

PowerShell:
  PS> mediaforge completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

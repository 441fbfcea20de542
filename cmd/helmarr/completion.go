package main

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for helmarr.

To load completions:

Bash:
  $ source <(helmarr completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ helmarr completion bash > /etc/bash_completion.d/helmarr
  # macOS:
  $ helmarr completion bash > $(brew --prefix)/etc/bash_completion.d/helmarr

Zsh:
  $ source <(helmarr completion zsh)
  # To load completions for each session, execute once:
  $ helmarr completion zsh > "${fpath[1]}/_helmarr"

Fish:
  $ helmarr completion fish | source
  # To load completions for each session, execute once:
  $ helmarr completion fish > ~/.config/fish/completions/helmarr.fish

PowerShell:
  PS> helmarr completion powershell | Out-String | Invoke-Expression
  # To load completions for each session, execute once:
  PS> helmarr completion powershell > helmarr.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

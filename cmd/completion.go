package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script",
	Long: `To load completions:

Bash:
  $ source <(xml-validate completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ xml-validate completion bash > /etc/bash_completion.d/xml-validate
  # macOS:
  $ xml-validate completion bash > $(brew --prefix)/etc/bash_completion.d/xml-validate

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ xml-validate completion zsh > "${fpath[1]}/_xml-validate"

  # You will need to start a new shell for this setup to take effect.

fish:
  $ xml-validate completion fish | source

  # To load completions for each session, execute once:
  $ xml-validate completion fish > ~/.config/fish/completions/xml-validate.fish

PowerShell:
  PS> xml-validate completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> xml-validate completion powershell > xml-validate.ps1
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
			return cmd.Root().GenPowerShellCompletion(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

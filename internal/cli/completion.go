package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for surge.

To load completions:

Bash:
  $ source <(surge completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ surge completion bash > /etc/bash_completion.d/surge
  # macOS:
  $ surge completion bash > $(brew --prefix)/etc/bash_completion.d/surge

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ surge completion zsh > "${fpath[1]}/_surge"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ surge completion fish | source

  # To load completions for each session, execute once:
  $ surge completion fish > ~/.config/fish/completions/surge.fish

PowerShell:
  PS> surge completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> surge completion powershell > surge.ps1
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

// completeDomains offers the account's cached domain list as shell
// completion for domain arguments. The cache is filled by "surge list";
// completion itself never hits the network.
func (c *CLI) completeDomains(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	_, cred, err := c.auth(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := c.cachedDomainList(ctx, cred.Token)
	matches := []string{}
	for _, name := range names {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

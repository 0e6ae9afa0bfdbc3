package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for swimlog.

Tab-completion covers commands, flags, event names for add and clear,
and spreadsheet files for import.

Bash:
  # Current session only:
  source <(swimlog completion bash)

  # Linux:
  swimlog completion bash > ~/.local/share/bash-completion/completions/swimlog

  # macOS (requires bash-completion from Homebrew):
  swimlog completion bash > $(brew --prefix)/etc/bash_completion.d/swimlog

Zsh:
  mkdir -p ~/.zsh/completion
  swimlog completion zsh > ~/.zsh/completion/_swimlog
  # Make sure ~/.zsh/completion is in fpath before compinit runs

Fish:
  swimlog completion fish > ~/.config/fish/completions/swimlog.fish

PowerShell:
  # Add this line to your $PROFILE:
  swimlog completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	d := deps()
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(d.Stdout, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(d.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(d.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(d.Stdout)
	default:
		_, _ = fmt.Fprintf(d.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(d.Stderr, "Supported shells: bash, zsh, fish, powershell")
		d.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		d.Exit(1)
		return
	}
}

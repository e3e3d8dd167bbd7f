package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitpilot/cli/internal/assistant"
)

var explainCmd = &cobra.Command{
	Use:   "explain <git command...>",
	Short: "Explain what a git command does",
	Long: `Ask the LLM to explain a git command without executing it.

Examples:
  gitpilot explain git rebase -i HEAD~3
  gitpilot explain "git reset --hard origin/main"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	a, _, err := buildAssistant()
	if err != nil {
		return err
	}

	command := strings.Join(args, " ")
	resp, err := a.ExplainCommand(cmd.Context(), command)
	if err != nil {
		return err
	}

	cmd.Printf("%s\n\n", styleCommand.Render(command))
	cmd.Println(resp.Reply)
	if resp.Explanation != "" && resp.Explanation != resp.Reply {
		cmd.Println()
		cmd.Println(resp.Explanation)
	}
	if assistant.IsDestructive(command) {
		cmd.Println()
		cmd.Println(styleDanger.Render("Warning: this command is destructive and may discard work."))
	}
	return nil
}

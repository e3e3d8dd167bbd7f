package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gitpilot/cli/internal/assistant"
)

// errCommandFailed signals a non-zero exit from the executed command. The
// result has already been printed, so the error itself stays silent and
// only drives the process exit code.
var errCommandFailed = errors.New("suggested command failed")

var (
	askYes      bool
	askDryRun   bool
	askProvider string
)

var askCmd = &cobra.Command{
	Use:   "ask <request...>",
	Short: "Turn a natural language request into a git command",
	Long: `Ask GitPilot to perform a git operation described in plain language.
The repository state is gathered, sent to the LLM along with your request,
and the suggested command is shown before anything runs.

Examples:
  gitpilot ask "stage all my changes"
  gitpilot ask "undo my last commit but keep the changes"
  gitpilot ask --dry-run "delete the old feature branch"`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runAsk,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	askCmd.Flags().BoolVarP(&askYes, "yes", "y", false, "Execute without asking for confirmation")
	askCmd.Flags().BoolVar(&askDryRun, "dry-run", false, "Show the suggested command without executing it")
	askCmd.Flags().StringVar(&askProvider, "provider", "", "Force a specific LLM provider (gemini or openai)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Errors are silenced at the cobra level so the quiet errCommandFailed
	// sentinel does not print; real failures are reported here instead.
	a, _, err := buildAssistant()
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return err
	}

	request := strings.Join(args, " ")

	result, err := a.ProcessRequest(cmd.Context(), request, assistant.Options{
		ForceProvider: askProvider,
		DryRun:        askDryRun,
		Confirmed:     askYes,
		Confirm:       confirmPlan(cmd),
	})
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return err
	}

	printAskResult(cmd, result)
	// Propagate command failure to the shell via the error return; main
	// turns a failed Execute into exit code 1.
	return askResultErr(result)
}

func askResultErr(result *assistant.Result) error {
	if result.Execution != nil && result.Execution.Executed && !result.Execution.Success {
		return errCommandFailed
	}
	return nil
}

// confirmPlan prompts on the terminal before a guarded command runs.
// Anything other than y or yes declines.
func confirmPlan(cmd *cobra.Command) func(plan assistant.Plan) bool {
	return func(plan assistant.Plan) bool {
		if plan.IsDestructive {
			cmd.Println(styleDanger.Render("This command is destructive and may discard work."))
		}
		cmd.Printf("Run %s? [y/N] ", styleCommand.Render(plan.Command))

		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

func printAskResult(cmd *cobra.Command, result *assistant.Result) {
	cmd.Println(result.Reply)
	cmd.Println()
	cmd.Printf("Command:     %s\n", styleCommand.Render(result.Command))
	cmd.Printf("Explanation: %s\n", result.Explanation)
	cmd.Printf("Risk:        %s\n", renderRisk(result.Plan))
	if result.Confidence > 0 {
		cmd.Printf("Confidence:  %.0f%%\n", result.Confidence*100)
	}
	if len(result.Alternatives) > 0 {
		cmd.Println("Alternatives:")
		for _, alt := range result.Alternatives {
			cmd.Printf("  - %s\n", alt)
		}
	}

	exec := result.Execution
	if exec == nil {
		return
	}
	cmd.Println()

	switch {
	case !exec.Executed:
		cmd.Println(styleMuted.Render(fmt.Sprintf("Not executed (%s)", exec.Reason)))
	case exec.Success:
		cmd.Println(styleSafe.Render("Executed successfully"))
		if exec.Stdout != "" {
			cmd.Println(exec.Stdout)
		}
	default:
		cmd.Println(styleDanger.Render(fmt.Sprintf("Command failed (exit code %d)", exec.ExitCode)))
		if exec.Stderr != "" {
			cmd.Println(exec.Stderr)
		}
	}
}

func renderRisk(plan assistant.Plan) string {
	if plan.IsDestructive {
		return styleDanger.Render(plan.EstimatedRisk + " (destructive)")
	}
	return styleSafe.Render(plan.EstimatedRisk)
}

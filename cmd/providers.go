package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitpilot/cli/internal/config"
	"github.com/gitpilot/cli/internal/llm"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show LLM provider availability",
	Long:  `List the known LLM providers in priority order with their configuration state.`,
	RunE:  runProviders,
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	factory := llm.NewFactory(cfg, newLogger())
	for _, status := range factory.List() {
		if status.Available {
			cmd.Printf("  %s %s", styleSafe.Render("●"), status.Name)
			if status.ModelInfo != nil {
				cmd.Printf(" %s", styleMuted.Render("("+status.ModelInfo.Model+")"))
			}
			cmd.Println()
		} else {
			cmd.Printf("  %s %s %s\n", styleMuted.Render("○"), status.Name, styleMuted.Render("(no API key)"))
		}
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitpilot/cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage GitPilot configuration",
	Long: `Manage GitPilot configuration stored in ~/.gitpilot/config.json.

Quick start:
  gitpilot config set --google-api-key=your-key

Priority order: environment variables > config file > defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		cmd.Printf("Provider:      %s\n", cfg.Provider)
		cmd.Printf("Gemini model:  %s (key %s)\n", cfg.GeminiModel, config.MaskKey(cfg.GoogleAPIKey))
		cmd.Printf("OpenAI model:  %s (key %s)\n", cfg.OpenAIModel, config.MaskKey(cfg.OpenAIAPIKey))
		cmd.Printf("Git timeout:   %ds\n", cfg.GitTimeoutSeconds)
		cmd.Printf("Max commits:   %d\n", cfg.MaxCommits)
		cmd.Printf("Safe mode:     %v\n", cfg.SafeMode)
		cmd.Printf("Confirmation:  %v\n", cfg.RequireConfirmation)
		cmd.Println()
		cmd.Printf("Config:        %s\n", config.Path())

		return nil
	},
}

var (
	setProvider     string
	setGoogleKey    string
	setOpenAIKey    string
	setGeminiModel  string
	setOpenAIModel  string
	setMaxCommits   int
	setGitTimeout   int
	setConfirmation bool
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long: `Set configuration values in ~/.gitpilot/config.json.

Examples:
  # Basic setup (most users)
  gitpilot config set --google-api-key=your-key

  # Use OpenAI instead
  gitpilot config set --provider=openai --openai-api-key=sk-xxx

  # Tune scraping
  gitpilot config set --max-commits=10 --git-timeout=60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := map[string]interface{}{}

		if cmd.Flags().Changed("provider") {
			settings["provider"] = setProvider
		}
		if setGoogleKey != "" {
			settings["google_api_key"] = setGoogleKey
		}
		if setOpenAIKey != "" {
			settings["openai_api_key"] = setOpenAIKey
		}
		if cmd.Flags().Changed("gemini-model") {
			settings["gemini_model"] = setGeminiModel
		}
		if cmd.Flags().Changed("openai-model") {
			settings["openai_model"] = setOpenAIModel
		}
		if cmd.Flags().Changed("max-commits") {
			settings["max_commits"] = setMaxCommits
		}
		if cmd.Flags().Changed("git-timeout") {
			settings["git_timeout"] = setGitTimeout
		}
		if cmd.Flags().Changed("require-confirmation") {
			settings["require_confirmation"] = setConfirmation
		}

		if len(settings) == 0 {
			return fmt.Errorf("no values provided, see 'gitpilot config set --help'")
		}

		if err := config.Save(settings); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		// Reload to surface validation problems immediately.
		if _, err := config.Load(); err != nil {
			return fmt.Errorf("configuration saved but invalid: %w", err)
		}

		cmd.Println("Configuration saved")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(config.Path())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	configSetCmd.Flags().StringVar(&setProvider, "provider", "", "Preferred provider (gemini or openai)")
	configSetCmd.Flags().StringVar(&setGoogleKey, "google-api-key", "", "Google API key for Gemini")
	configSetCmd.Flags().StringVar(&setOpenAIKey, "openai-api-key", "", "OpenAI API key")
	configSetCmd.Flags().StringVar(&setGeminiModel, "gemini-model", "", "Gemini model name")
	configSetCmd.Flags().StringVar(&setOpenAIModel, "openai-model", "", "OpenAI model name")
	configSetCmd.Flags().IntVar(&setMaxCommits, "max-commits", 0, "Number of recent commits to scrape (1-100)")
	configSetCmd.Flags().IntVar(&setGitTimeout, "git-timeout", 0, "Per-command git timeout in seconds (5-300)")
	configSetCmd.Flags().BoolVar(&setConfirmation, "require-confirmation", true, "Ask before executing any command")
}

package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitpilot/cli/internal/assistant"
	"github.com/gitpilot/cli/internal/config"
	"github.com/gitpilot/cli/internal/gitx"
	"github.com/gitpilot/cli/internal/llm"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"
)

var (
	flagRepo    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gitpilot",
	Short: "GitPilot - Natural language Git assistant",
	Long: `GitPilot turns natural language requests into git commands using an LLM,
with full awareness of your repository's current state.

Get started:
  1. Set an API key: export GOOGLE_API_KEY="your-key" (or OPENAI_API_KEY)
  2. Ask for what you want: gitpilot ask "stage all my changes"
  3. Review the suggested command and confirm

Destructive commands always require confirmation before execution.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", ".", "Path to the git repository")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stdioCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("gitpilot %s\n", Version)
	},
}

// newLogger returns a development logger when verbose mode is on, a no-op
// logger otherwise. Log output goes to stderr so stdout stays clean for
// command output and the stdio protocol.
func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// buildAssistant wires the full stack for the repository named by --repo.
func buildAssistant() (*assistant.Assistant, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	logger := newLogger()

	runner := gitx.NewRunner(cfg.GitPath, flagRepo, cfg.GitTimeout(), logger)
	scraper, err := gitx.NewScraper(flagRepo, runner, cfg.MaxCommits, logger)
	if err != nil {
		return nil, nil, err
	}

	factory := llm.NewFactory(cfg, logger)
	return assistant.New(cfg, scraper, runner, factory, logger), cfg, nil
}

// buildScraper wires just the repository side, for commands that never
// touch an LLM.
func buildScraper() (*gitx.Scraper, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	runner := gitx.NewRunner(cfg.GitPath, flagRepo, cfg.GitTimeout(), logger)
	return gitx.NewScraper(flagRepo, runner, cfg.MaxCommits, logger)
}

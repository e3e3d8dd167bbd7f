package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var contextSummary bool

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the repository snapshot as JSON",
	Long: `Scrape the repository and print the full structured snapshot as JSON.
This is the same data the LLM sees when processing a request.`,
	RunE: runContext,
}

func init() {
	contextCmd.Flags().BoolVar(&contextSummary, "summary", false, "Print only the one-line summary")
}

func runContext(cmd *cobra.Command, args []string) error {
	scraper, err := buildScraper()
	if err != nil {
		return err
	}

	snap, err := scraper.Scrape()
	if err != nil {
		return err
	}

	if contextSummary {
		cmd.Println(snap.Summary())
		return nil
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

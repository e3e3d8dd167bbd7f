package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitpilot/cli/internal/schema"
)

var statusQuick bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the repository state",
	Long:  `Display the scraped repository state: branch, tracking, file changes and any special states.`,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusQuick, "quick", "q", false, "Print a one-line status without a full scrape")
}

func runStatus(cmd *cobra.Command, args []string) error {
	scraper, err := buildScraper()
	if err != nil {
		return err
	}

	if statusQuick {
		cmd.Println(scraper.QuickStatus())
		return nil
	}

	snap, err := scraper.Scrape()
	if err != nil {
		return err
	}

	cmd.Println(styleHeading.Render("Repository"))
	cmd.Printf("  Path:   %s\n", snap.RepositoryPath)
	cmd.Printf("  Branch: %s%s\n", snap.CurrentBranch.Name, trackingSuffix(snap.CurrentBranch))

	if snap.HasConflicts || snap.IsMerging || snap.IsRebasing || snap.IsDetachedHead {
		cmd.Println()
		cmd.Println(styleHeading.Render("Attention"))
		if snap.HasConflicts {
			cmd.Println("  " + styleDanger.Render("Merge conflicts detected"))
		}
		if snap.IsMerging {
			cmd.Println("  " + styleWarn.Render("Merge in progress"))
		}
		if snap.IsRebasing {
			cmd.Println("  " + styleWarn.Render("Rebase in progress"))
		}
		if snap.IsDetachedHead {
			cmd.Println("  " + styleWarn.Render("Detached HEAD state"))
		}
	}

	cmd.Println()
	cmd.Println(styleHeading.Render("Changes"))
	if !snap.HasUncommittedChanges() {
		cmd.Println("  " + styleSafe.Render("Working directory clean"))
	} else {
		printFileList(cmd, "Staged", snap.StagedEntries())
		printFileList(cmd, "Modified", snap.FilesByStatus(schema.StatusModified))
		printFileList(cmd, "Deleted", snap.FilesByStatus(schema.StatusDeleted))
		printFileList(cmd, "Renamed", snap.FilesByStatus(schema.StatusRenamed))
		printFileList(cmd, "Untracked", snap.FilesByStatus(schema.StatusUntracked))
	}

	if len(snap.RecentCommits) > 0 {
		cmd.Println()
		cmd.Println(styleHeading.Render("Recent commits"))
		for _, c := range snap.RecentCommits {
			cmd.Printf("  %s %s\n", styleMuted.Render(c.ShortHash), c.Message)
		}
	}

	if len(snap.Stashes) > 0 {
		cmd.Println()
		cmd.Printf("%d stash(es), latest: %s\n", len(snap.Stashes), snap.Stashes[0].Description)
	}

	return nil
}

func trackingSuffix(b schema.BranchRecord) string {
	if !b.HasRemote {
		return ""
	}
	switch {
	case b.AheadCount > 0 && b.BehindCount > 0:
		return styleWarn.Render(" (diverged)")
	case b.AheadCount > 0:
		return styleWarn.Render(" (ahead)")
	case b.BehindCount > 0:
		return styleWarn.Render(" (behind)")
	default:
		return styleSafe.Render(" (up to date)")
	}
}

func printFileList(cmd *cobra.Command, label string, files []schema.FileEntry) {
	if len(files) == 0 {
		return
	}
	cmd.Printf("  %s:\n", label)
	for _, f := range files {
		line := "    " + f.Path
		if f.Details != "" {
			line += styleMuted.Render(" (" + f.Details + ")")
		}
		if f.HasConflicts {
			line += styleDanger.Render(" [conflict]")
		}
		cmd.Println(line)
	}
}

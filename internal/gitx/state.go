package gitx

import (
	"os"
	"path/filepath"
	"strings"
)

// specialStates holds the in-progress operation flags read from the
// repository control files.
type specialStates struct {
	isMerging      bool
	isRebasing     bool
	isDetachedHead bool
}

// detectSpecialStates checks for merge, rebase and detached-HEAD states.
// The three checks are independent; a failed check degrades its flag to
// false instead of propagating.
func detectSpecialStates(repoPath string, runner commandRunner) specialStates {
	var states specialStates

	gitDir := filepath.Join(repoPath, ".git")

	if _, err := os.Stat(filepath.Join(gitDir, "MERGE_HEAD")); err == nil {
		states.isMerging = true
	}

	if _, err := os.Stat(filepath.Join(gitDir, "rebase-merge")); err == nil {
		states.isRebasing = true
	} else if _, err := os.Stat(filepath.Join(gitDir, "rebase-apply")); err == nil {
		states.isRebasing = true
	}

	// HEAD is detached when no local branch contains the current commit.
	head, err := runner.Run("rev-parse", "HEAD")
	if err == nil {
		containing, err := runner.Run("branch", "--contains", strings.TrimSpace(head))
		if err == nil {
			states.isDetachedHead = strings.TrimSpace(containing) == ""
		}
	}

	return states
}

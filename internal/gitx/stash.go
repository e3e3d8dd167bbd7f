package gitx

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gitpilot/cli/internal/schema"
)

var stashLinePattern = regexp.MustCompile(`^stash@\{(\d+)\}:\s+(.+)$`)

// parseStashes converts `git stash list` output into stash entries with
// the originating branch inferred from the description and the creation
// time resolved via a secondary lookup. Unparseable lines are logged and
// skipped.
func parseStashes(output string, runner commandRunner, now func() time.Time, logger *zap.Logger) []schema.StashEntry {
	stashes := []schema.StashEntry{}

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := stashLinePattern.FindStringSubmatch(line)
		if m == nil {
			logger.Warn("skipping unparseable stash line", zap.String("line", line))
			continue
		}

		stashID := fmt.Sprintf("stash@{%s}", m[1])
		description := m[2]

		entry := schema.StashEntry{
			StashID:     stashID,
			Description: description,
			Branch:      stashBranch(description),
			CreatedAt:   stashCreationTime(stashID, runner, now, logger),
		}
		stashes = append(stashes, entry)
	}

	return stashes
}

// stashBranch extracts the branch name from descriptions like
// "WIP on main: a1b2c3d Add feature".
func stashBranch(description string) string {
	idx := strings.Index(description, " on ")
	if idx < 0 {
		return "unknown"
	}
	rest := description[idx+len(" on "):]
	if colon := strings.Index(rest, ":"); colon >= 0 {
		return rest[:colon]
	}
	return rest
}

// stashCreationTime resolves the stash ref to its commit and reads the
// commit timestamp. Failures fall back to the current time.
func stashCreationTime(stashID string, runner commandRunner, now func() time.Time, logger *zap.Logger) time.Time {
	hash, err := runner.Run("rev-parse", stashID)
	if err != nil {
		logger.Warn("failed to resolve stash", zap.String("stash", stashID), zap.Error(err))
		return now()
	}

	dateOut, err := runner.Run("log", "-1", "--format=%ai", strings.TrimSpace(hash))
	if err != nil || strings.TrimSpace(dateOut) == "" {
		logger.Warn("failed to get stash creation time", zap.String("stash", stashID), zap.Error(err))
		return now()
	}

	return parseGitTime(dateOut, now)
}

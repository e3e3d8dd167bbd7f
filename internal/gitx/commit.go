package gitx

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gitpilot/cli/internal/schema"
)

// commandRunner is the slice of Runner the parsers need for secondary
// lookups. Tests substitute a fake.
type commandRunner interface {
	Run(args ...string) (string, error)
}

// Decorated oneline log format: hash, optional parenthesized decorations,
// message. The decoration group stops at the first closing paren so
// messages containing parentheses are not swallowed.
var logLinePattern = regexp.MustCompile(`^([a-f0-9]+)\s+(?:\(([^)]+)\)\s+)?(.+)$`)

const shortHashLen = 7

// parseCommits converts `git log --oneline --decorate` output into commit
// records, enriching each with author, date and changed-file count via
// per-commit lookups. Lines that do not match the expected shape are
// logged and skipped.
func parseCommits(output string, runner commandRunner, now func() time.Time, logger *zap.Logger) []schema.CommitRecord {
	commits := []schema.CommitRecord{}

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := logLinePattern.FindStringSubmatch(line)
		if m == nil {
			logger.Warn("skipping unparseable log line", zap.String("line", line))
			continue
		}

		hash := m[1]
		decorations := m[2]
		message := m[3]

		commit := schema.CommitRecord{
			Hash:      hash,
			ShortHash: shortHash(hash),
			Message:   message,
			Author:    "Unknown",
			Date:      now(),
			IsHead:    strings.Contains(decorations, "HEAD"),
			Branch:    branchFromDecorations(decorations),
		}

		if author, date, filesChanged, ok := lookupCommitInfo(hash, runner, now, logger); ok {
			commit.Author = author
			commit.Date = date
			commit.FilesChanged = &filesChanged
		}

		commits = append(commits, commit)
	}

	return commits
}

func shortHash(hash string) string {
	if len(hash) < shortHashLen {
		return hash
	}
	return hash[:shortHashLen]
}

func branchFromDecorations(decorations string) string {
	if strings.Contains(decorations, "->") {
		return strings.TrimSpace(decorations[strings.Index(decorations, "->")+2:])
	}
	if decorations != "" && !strings.Contains(decorations, "HEAD") {
		return decorations
	}
	return ""
}

// lookupCommitInfo fetches author, date and changed-file count for one
// commit. Lookup failures are non-fatal: the commit keeps its defaults.
func lookupCommitInfo(hash string, runner commandRunner, now func() time.Time, logger *zap.Logger) (author string, date time.Time, filesChanged int, ok bool) {
	out, err := runner.Run("log", "-1", "--format=%an <%ae>|%ai", hash)
	if err != nil {
		logger.Warn("failed to get commit info", zap.String("hash", hash), zap.Error(err))
		return "", time.Time{}, 0, false
	}

	idx := strings.Index(out, "|")
	if idx < 0 {
		return "", time.Time{}, 0, false
	}
	author = strings.TrimSpace(out[:idx])
	date = parseGitTime(out[idx+1:], now)

	filesOut, err := runner.Run("diff-tree", "--no-commit-id", "--name-only", "-r", hash)
	if err != nil {
		logger.Warn("failed to count changed files", zap.String("hash", hash), zap.Error(err))
		return author, date, 0, true
	}
	for _, f := range strings.Split(filesOut, "\n") {
		if strings.TrimSpace(f) != "" {
			filesChanged++
		}
	}

	return author, date, filesChanged, true
}

var gitTimeLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05-07:00",
}

// parseGitTime parses git's ISO-8601 timestamps, normalizing a trailing Z
// to an explicit offset. A malformed timestamp falls back to the current
// time rather than failing the enclosing parse.
func parseGitTime(s string, now func() time.Time) time.Time {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range gitTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now()
}

package gitx

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gitpilot/cli/internal/schema"
)

var (
	aheadPattern  = regexp.MustCompile(`(\d+)\s+ahead`)
	behindPattern = regexp.MustCompile(`(\d+)\s+behind`)
)

// parseBranches converts `git branch -vv` output into branch records. The
// current branch carries a leading "* "; a bracketed second token holds the
// remote-tracking annotation with optional ahead/behind counts.
func parseBranches(output string, logger *zap.Logger) []schema.BranchRecord {
	branches := []schema.BranchRecord{}

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		isCurrent := strings.HasPrefix(line, "* ")
		if isCurrent {
			line = line[2:]
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			logger.Warn("skipping unparseable branch line", zap.String("line", raw))
			continue
		}

		record := schema.BranchRecord{
			Name:      parts[0],
			IsCurrent: isCurrent,
		}

		if len(parts) > 1 && strings.HasPrefix(parts[1], "[") && strings.HasSuffix(parts[1], "]") {
			remoteInfo := strings.Trim(parts[1], "[]")
			if strings.Contains(remoteInfo, "/") {
				record.HasRemote = true
				record.RemoteName = remoteInfo[strings.Index(remoteInfo, "/")+1:]

				if len(parts) > 2 {
					tracking := strings.Join(parts[2:], " ")
					if m := aheadPattern.FindStringSubmatch(tracking); m != nil {
						record.AheadCount, _ = strconv.Atoi(m[1])
					}
					if m := behindPattern.FindStringSubmatch(tracking); m != nil {
						record.BehindCount, _ = strconv.Atoi(m[1])
					}
				}
			}
		}

		record.IsUpToDate = record.AheadCount == 0 && record.BehindCount == 0
		branches = append(branches, record)
	}

	return branches
}

// parseRemoteBranches converts `git branch -r` output into branch records.
// Lines containing "->" are the remote HEAD alias and are skipped. The
// branch name may itself contain slashes, so only the first one splits
// remote from branch.
func parseRemoteBranches(output string) []schema.BranchRecord {
	branches := []schema.BranchRecord{}

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.Contains(line, "->") {
			continue
		}

		idx := strings.Index(line, "/")
		if idx < 0 {
			continue
		}

		branches = append(branches, schema.BranchRecord{
			Name:       line[idx+1:],
			IsCurrent:  false,
			HasRemote:  true,
			RemoteName: line[:idx],
			// Remote-only branches have no local divergence to measure.
			AheadCount:  0,
			BehindCount: 0,
			IsUpToDate:  true,
		})
	}

	return branches
}

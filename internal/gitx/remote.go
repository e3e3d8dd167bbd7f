package gitx

import (
	"strings"

	"github.com/gitpilot/cli/internal/schema"
)

// parseRemotes converts `git remote -v` output into one record per distinct
// remote name. The first line for a name establishes its URL and kind;
// later lines only toggle the push/pull role flags. Output preserves the
// order in which remote names first appear.
func parseRemotes(output string) []schema.RemoteRecord {
	remotes := []schema.RemoteRecord{}
	index := map[string]int{}

	for _, line := range strings.Split(output, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}

		name := parts[0]
		url := parts[1]
		operation := strings.Trim(parts[2], "()")

		i, seen := index[name]
		if !seen {
			remotes = append(remotes, schema.RemoteRecord{
				Name:    name,
				URL:     url,
				URLType: classifyURL(url),
			})
			i = len(remotes) - 1
			index[name] = i
		}

		switch operation {
		case "push":
			remotes[i].IsDefaultPush = true
		case "fetch":
			remotes[i].IsDefaultPull = true
		}
	}

	return remotes
}

func classifyURL(url string) string {
	switch {
	case strings.HasPrefix(url, "https://"):
		return schema.URLHTTPS
	case strings.HasPrefix(url, "ssh://") || strings.Contains(url, "@"):
		return schema.URLSSH
	case strings.HasPrefix(url, "git://"):
		return schema.URLGit
	default:
		return schema.URLUnknown
	}
}

package gitx

import (
	"strings"

	"github.com/gitpilot/cli/internal/schema"
)

var statusCategories = map[byte]string{
	'M': schema.StatusModified,
	'A': schema.StatusAdded,
	'D': schema.StatusDeleted,
	'R': schema.StatusRenamed,
	'C': schema.StatusCopied,
	'U': schema.StatusUnmerged,
	'?': schema.StatusUntracked,
}

func statusCategory(code byte) string {
	if cat, ok := statusCategories[code]; ok {
		return cat
	}
	return schema.StatusUnknown
}

// parseStatus converts `git status --porcelain` output into the working
// tree and staging area file lists. Each line is XY<space>PATH where X is
// the index status and Y the working tree status. An entry with both
// columns set appears in both lists.
func parseStatus(output string) (workingTree, stagingArea []schema.FileEntry) {
	workingTree = []schema.FileEntry{}
	stagingArea = []schema.FileEntry{}

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) < 3 {
			continue
		}

		indexStatus := line[0]
		workStatus := line[1]
		path := line[3:]
		if path == "" {
			continue
		}

		entry := classifyFile(path, indexStatus, workStatus)

		if workStatus != ' ' {
			workingTree = append(workingTree, entry)
		}
		if indexStatus != ' ' {
			stagingArea = append(stagingArea, entry)
		}
	}

	return workingTree, stagingArea
}

// classifyFile maps the two porcelain status characters to a FileEntry.
func classifyFile(path string, indexStatus, workStatus byte) schema.FileEntry {
	var entry schema.FileEntry
	entry.Path = path

	switch {
	case indexStatus == '?' || workStatus == '?':
		// Untracked lines are "?? path": both columns carry the marker.
		// Untracked files are never staged or tracked.
		entry.Status = schema.StatusUntracked
		entry.IsTracked = false
		entry.IsStaged = false
	case indexStatus == ' ' && workStatus != ' ':
		entry.Status = statusCategory(workStatus)
		entry.IsTracked = true
		entry.IsStaged = false
		entry.ChangeType = schema.ChangeUnstaged
	case indexStatus != ' ' && workStatus == ' ':
		entry.Status = statusCategory(indexStatus)
		entry.IsTracked = true
		entry.IsStaged = true
		entry.ChangeType = schema.ChangeStaged
	default:
		// Both columns set, e.g. MM = modified in index and working tree.
		entry.Status = statusCategory(workStatus)
		entry.IsTracked = true
		entry.IsStaged = true
		entry.ChangeType = schema.ChangeBoth
	}

	entry.HasConflicts = indexStatus == 'U' || workStatus == 'U'
	entry.Details = renameDetails(path, indexStatus, workStatus)

	return entry
}

// renameDetails extracts the original path for renames and copies. Short
// status lines may omit the arrow depending on flags; absence means no
// detail available, not an error.
func renameDetails(path string, indexStatus, workStatus byte) string {
	if indexStatus != 'R' && indexStatus != 'C' && workStatus != 'R' && workStatus != 'C' {
		return ""
	}
	if idx := strings.Index(path, " -> "); idx >= 0 {
		return "renamed from " + path[:idx]
	}
	return ""
}

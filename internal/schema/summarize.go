package schema

import "strings"

// Keyword sets steering how much context is embedded in a prompt. Large
// nested lists are dropped unless the request text asks for them, to bound
// prompt size.
var (
	allFilesKeywords   = []string{"all files", "list all files", "every file"}
	remoteKeywords     = []string{"remote branch", "remote branches"}
	stashKeywords      = []string{"stash", "show stashes", "list stashes"}
	actionableStatuses = map[string]bool{
		StatusModified:  true,
		StatusDeleted:   true,
		StatusRenamed:   true,
		StatusUntracked: true,
	}
)

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func actionableOnly(entries []FileEntry) []FileEntry {
	out := make([]FileEntry, 0, len(entries))
	for _, f := range entries {
		if actionableStatuses[f.Status] {
			out = append(out, f)
		}
	}
	return out
}

// ForPrompt returns a copy of the snapshot trimmed according to the user's
// request text. File entries are kept only when actionable unless the
// request explicitly asks for all files; remote branches and stashes are
// dropped unless the request signals interest in them.
func (s RepositorySnapshot) ForPrompt(request string) RepositorySnapshot {
	req := strings.ToLower(request)
	out := s

	if !containsAny(req, allFilesKeywords) {
		out.WorkingDirectoryStatus = actionableOnly(s.WorkingDirectoryStatus)
		out.StagingAreaStatus = actionableOnly(s.StagingAreaStatus)
	}

	if !containsAny(req, remoteKeywords) {
		out.RemoteBranches = nil
	}
	if !containsAny(req, stashKeywords) {
		out.Stashes = nil
	}

	return out
}

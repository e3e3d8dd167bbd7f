package schema

import (
	"fmt"
	"strings"
	"time"
)

// File status categories as reported in a snapshot.
const (
	StatusModified  = "modified"
	StatusAdded     = "added"
	StatusDeleted   = "deleted"
	StatusRenamed   = "renamed"
	StatusCopied    = "copied"
	StatusUnmerged  = "unmerged"
	StatusUntracked = "untracked"
	StatusUnknown   = "unknown"
)

// Change origin tags describing where a file's changes live.
const (
	ChangeUnstaged = "unstaged"
	ChangeStaged   = "staged"
	ChangeBoth     = "both"
)

// Remote URL kinds.
const (
	URLHTTPS   = "https"
	URLSSH     = "ssh"
	URLGit     = "git"
	URLUnknown = "unknown"
)

// FileEntry is the status of a single file in the working tree or index.
type FileEntry struct {
	Path         string `json:"file_path"`
	Status       string `json:"status"`
	IsStaged     bool   `json:"is_staged"`
	IsTracked    bool   `json:"is_tracked"`
	ChangeType   string `json:"change_type,omitempty"`
	Details      string `json:"details,omitempty"`
	HasConflicts bool   `json:"has_conflicts"`
}

// BranchRecord describes a local or remote branch and its tracking state.
type BranchRecord struct {
	Name        string `json:"name"`
	IsCurrent   bool   `json:"is_current"`
	HasRemote   bool   `json:"has_remote"`
	RemoteName  string `json:"remote_name,omitempty"`
	AheadCount  int    `json:"ahead_count"`
	BehindCount int    `json:"behind_count"`
	IsUpToDate  bool   `json:"is_up_to_date"`
}

// CommitRecord is one commit from the recent history, enriched with
// author, date and changed-file count from secondary lookups.
type CommitRecord struct {
	Hash         string    `json:"hash"`
	ShortHash    string    `json:"short_hash"`
	Message      string    `json:"message"`
	Author       string    `json:"author"`
	Date         time.Time `json:"date"`
	IsHead       bool      `json:"is_head"`
	Branch       string    `json:"branch,omitempty"`
	FilesChanged *int      `json:"files_changed,omitempty"`
}

// RemoteRecord describes one configured remote. A remote appearing on both
// a fetch and a push line yields a single record with both flags set.
type RemoteRecord struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	URLType       string `json:"url_type"`
	IsDefaultPush bool   `json:"is_default_push"`
	IsDefaultPull bool   `json:"is_default_pull"`
}

// StashEntry is one entry from the stash list.
type StashEntry struct {
	StashID     string    `json:"stash_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Branch      string    `json:"branch"`
}

// RepositorySnapshot is the complete scraped state of a repository.
// It is built once per scrape and never mutated afterwards.
type RepositorySnapshot struct {
	RepositoryPath   string `json:"repository_path"`
	IsGitRepository  bool   `json:"is_git_repository"`
	WorkingDirectory string `json:"working_directory"`

	CurrentBranch  BranchRecord   `json:"current_branch"`
	LocalBranches  []BranchRecord `json:"local_branches"`
	RemoteBranches []BranchRecord `json:"remote_branches"`
	Remotes        []RemoteRecord `json:"remotes"`

	WorkingDirectoryStatus []FileEntry `json:"working_directory_status"`
	StagingAreaStatus      []FileEntry `json:"staging_area_status"`

	RecentCommits []CommitRecord `json:"recent_commits"`
	Stashes       []StashEntry   `json:"stashes"`

	HasConflicts   bool `json:"has_conflicts"`
	IsMerging      bool `json:"is_merging"`
	IsRebasing     bool `json:"is_rebasing"`
	IsDetachedHead bool `json:"is_detached_head"`

	TotalFiles     int `json:"total_files"`
	ModifiedFiles  int `json:"modified_files"`
	StagedFiles    int `json:"staged_files"`
	UntrackedFiles int `json:"untracked_files"`

	CapturedAt time.Time `json:"captured_at"`
}

// Normalize recomputes the derived fields from the file lists, overriding
// whatever values were supplied. The summary counts and the conflict flag
// are always derivable from the detailed lists, so the recomputed values
// win over caller-supplied ones.
func Normalize(s RepositorySnapshot) RepositorySnapshot {
	modified := 0
	untracked := 0
	conflicts := false
	for _, f := range s.WorkingDirectoryStatus {
		switch f.Status {
		case StatusModified, StatusDeleted, StatusRenamed:
			modified++
		case StatusUntracked:
			untracked++
		}
		if f.HasConflicts {
			conflicts = true
		}
	}

	staged := 0
	for _, f := range s.StagingAreaStatus {
		if f.IsStaged {
			staged++
		}
	}

	s.ModifiedFiles = modified
	s.UntrackedFiles = untracked
	s.StagedFiles = staged
	s.TotalFiles = len(s.WorkingDirectoryStatus) + len(s.StagingAreaStatus)
	s.HasConflicts = conflicts
	return s
}

// Summary renders a one-line human-readable overview of the snapshot.
func (s RepositorySnapshot) Summary() string {
	parts := []string{fmt.Sprintf("On branch: %s", s.CurrentBranch.Name)}

	if s.ModifiedFiles > 0 {
		parts = append(parts, fmt.Sprintf("Modified: %d files", s.ModifiedFiles))
	}
	if s.StagedFiles > 0 {
		parts = append(parts, fmt.Sprintf("Staged: %d files", s.StagedFiles))
	}
	if s.UntrackedFiles > 0 {
		parts = append(parts, fmt.Sprintf("Untracked: %d files", s.UntrackedFiles))
	}

	if s.HasConflicts {
		parts = append(parts, "Merge conflicts detected")
	}
	if s.IsMerging {
		parts = append(parts, "Merge in progress")
	}
	if s.IsRebasing {
		parts = append(parts, "Rebase in progress")
	}
	if s.IsDetachedHead {
		parts = append(parts, "Detached HEAD state")
	}

	if s.CurrentBranch.HasRemote {
		if s.CurrentBranch.AheadCount > 0 {
			parts = append(parts, fmt.Sprintf("%d commits ahead", s.CurrentBranch.AheadCount))
		}
		if s.CurrentBranch.BehindCount > 0 {
			parts = append(parts, fmt.Sprintf("%d commits behind", s.CurrentBranch.BehindCount))
		}
	}

	return strings.Join(parts, " | ")
}

// FilesByStatus returns the working-tree entries with the given status.
func (s RepositorySnapshot) FilesByStatus(status string) []FileEntry {
	var out []FileEntry
	for _, f := range s.WorkingDirectoryStatus {
		if f.Status == status {
			out = append(out, f)
		}
	}
	return out
}

// StagedEntries returns the staging-area entries with the staged flag set.
func (s RepositorySnapshot) StagedEntries() []FileEntry {
	var out []FileEntry
	for _, f := range s.StagingAreaStatus {
		if f.IsStaged {
			out = append(out, f)
		}
	}
	return out
}

// HasUncommittedChanges reports whether any modified, staged or untracked
// files exist.
func (s RepositorySnapshot) HasUncommittedChanges() bool {
	return s.ModifiedFiles > 0 || s.StagedFiles > 0 || s.UntrackedFiles > 0
}

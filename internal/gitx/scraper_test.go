package gitx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitpilot/cli/internal/schema"
)

func newTestRepoDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func scrapeResponses() map[string]string {
	return map[string]string{
		"branch --show-current": "main",
		"branch -vv":            "* main [origin/main] 2 ahead\n  dev",
		"remote -v": "origin\thttps://github.com/user/repo.git (fetch)\n" +
			"origin\thttps://github.com/user/repo.git (push)",
		"branch -r":                       "  origin/main\n  origin/HEAD -> origin/main",
		"status --porcelain":              "M  staged.txt\n M unstaged.txt\n?? new.txt",
		"log --max-count=5 --oneline --decorate": "a1b2c3d (HEAD -> main) Fix bug",
		"log -1 --format=%an <%ae>|%ai a1b2c3d":  "Jane <j@x.io>|2024-03-01 10:30:00 +0100",
		"diff-tree --no-commit-id --name-only -r a1b2c3d": "main.go",
		"stash list":                  "stash@{0}: WIP on main: a1b2c3d wip",
		"rev-parse stash@{0}":         "abc123",
		"log -1 --format=%ai abc123":  "2024-02-01 08:00:00 +0000",
		"rev-parse HEAD":              "a1b2c3dfull",
		"branch --contains a1b2c3dfull": "* main",
	}
}

func TestNewScraperRejectsNonRepository(t *testing.T) {
	_, err := NewScraper(t.TempDir(), &fakeRunner{}, 5, zap.NewNop())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestScrapeBuildsNormalizedSnapshot(t *testing.T) {
	dir := newTestRepoDir(t)
	runner := &fakeRunner{responses: scrapeResponses()}

	scraper, err := NewScraper(dir, runner, 5, zap.NewNop())
	require.NoError(t, err)
	scraper.now = fixedNow

	snap, err := scraper.Scrape()
	require.NoError(t, err)

	assert.True(t, snap.IsGitRepository)
	assert.Equal(t, "main", snap.CurrentBranch.Name)
	assert.True(t, snap.CurrentBranch.IsCurrent)
	assert.Equal(t, 2, snap.CurrentBranch.AheadCount)

	require.Len(t, snap.LocalBranches, 2)
	require.Len(t, snap.RemoteBranches, 1)
	require.Len(t, snap.Remotes, 1)
	require.Len(t, snap.RecentCommits, 1)
	require.Len(t, snap.Stashes, 1)

	// Counts come from normalization, not from the caller.
	assert.Equal(t, 1, snap.ModifiedFiles)
	assert.Equal(t, 1, snap.StagedFiles)
	assert.Equal(t, 1, snap.UntrackedFiles)
	assert.Equal(t, len(snap.WorkingDirectoryStatus)+len(snap.StagingAreaStatus), snap.TotalFiles)
	assert.False(t, snap.HasConflicts)
	assert.False(t, snap.IsDetachedHead)
	assert.Equal(t, fixedNow(), snap.CapturedAt)
}

func TestScrapeFailsWholeOnCommandError(t *testing.T) {
	dir := newTestRepoDir(t)
	responses := scrapeResponses()
	runner := &fakeRunner{
		responses: responses,
		errs: map[string]error{
			"status --porcelain": &CommandError{Command: "git status", Stderr: "fatal", ExitCode: 128},
		},
	}

	scraper, err := NewScraper(dir, runner, 5, zap.NewNop())
	require.NoError(t, err)

	snap, err := scraper.Scrape()
	assert.Nil(t, snap)

	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 128, cerr.ExitCode)
}

func TestScrapeConflictFlagRecomputed(t *testing.T) {
	dir := newTestRepoDir(t)
	responses := scrapeResponses()
	responses["status --porcelain"] = "UU conflicted.txt"
	runner := &fakeRunner{responses: responses}

	scraper, err := NewScraper(dir, runner, 5, zap.NewNop())
	require.NoError(t, err)

	snap, err := scraper.Scrape()
	require.NoError(t, err)
	assert.True(t, snap.HasConflicts)
}

func TestScrapeDetachedHead(t *testing.T) {
	dir := newTestRepoDir(t)
	responses := scrapeResponses()
	responses["branch --contains a1b2c3dfull"] = ""
	runner := &fakeRunner{responses: responses}

	scraper, err := NewScraper(dir, runner, 5, zap.NewNop())
	require.NoError(t, err)

	snap, err := scraper.Scrape()
	require.NoError(t, err)
	assert.True(t, snap.IsDetachedHead)
}

func TestScrapeMergeAndRebaseMarkers(t *testing.T) {
	dir := newTestRepoDir(t)
	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "MERGE_HEAD"), []byte("abc"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(gitDir, "rebase-merge"), 0o755))

	runner := &fakeRunner{responses: scrapeResponses()}
	scraper, err := NewScraper(dir, runner, 5, zap.NewNop())
	require.NoError(t, err)

	snap, err := scraper.Scrape()
	require.NoError(t, err)
	assert.True(t, snap.IsMerging)
	assert.True(t, snap.IsRebasing)
}

func TestQuickStatus(t *testing.T) {
	dir := newTestRepoDir(t)

	cases := []struct {
		name   string
		out    string
		outErr error
		want   string
	}{
		{name: "clean", out: "", want: "Working directory clean"},
		{name: "dirty", out: " M a.txt\n?? b.txt\n", want: "2 files with changes"},
		{name: "failure", outErr: &CommandError{Command: "git status", Stderr: "fatal", ExitCode: 128}, want: "Unable to determine status"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &fakeRunner{
				responses: map[string]string{"status --short": tc.out},
			}
			if tc.outErr != nil {
				runner.errs = map[string]error{"status --short": tc.outErr}
			}

			scraper, err := NewScraper(dir, runner, 5, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tc.want, scraper.QuickStatus())
		})
	}
}

func TestNormalizeOverridesCounts(t *testing.T) {
	snap := schema.RepositorySnapshot{
		WorkingDirectoryStatus: []schema.FileEntry{
			{Path: "a", Status: schema.StatusModified},
			{Path: "b", Status: schema.StatusUntracked},
			{Path: "c", Status: schema.StatusDeleted, HasConflicts: true},
		},
		StagingAreaStatus: []schema.FileEntry{
			{Path: "d", Status: schema.StatusAdded, IsStaged: true},
		},
		// Deliberately wrong values that normalization must correct.
		ModifiedFiles:  99,
		StagedFiles:    99,
		UntrackedFiles: 99,
		TotalFiles:     99,
		HasConflicts:   false,
	}

	out := schema.Normalize(snap)
	assert.Equal(t, 2, out.ModifiedFiles)
	assert.Equal(t, 1, out.StagedFiles)
	assert.Equal(t, 1, out.UntrackedFiles)
	assert.Equal(t, 4, out.TotalFiles)
	assert.True(t, out.HasConflicts)
}

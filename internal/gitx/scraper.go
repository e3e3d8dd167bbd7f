package gitx

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/gitpilot/cli/internal/schema"
)

// Scraper gathers the complete state of one repository. All queries within
// a scrape run strictly sequentially; independent Scrapers on independent
// repository paths are safe to use in parallel.
type Scraper struct {
	repoPath   string
	runner     commandRunner
	maxCommits int
	now        func() time.Time
	logger     *zap.Logger
}

// NewScraper validates that repoPath contains a git metadata directory and
// returns a Scraper using the given runner. A missing .git directory is a
// *ValidationError.
func NewScraper(repoPath string, runner commandRunner, maxCommits int, logger *zap.Logger) (*Scraper, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, errors.Wrap(err, "resolving repository path")
	}

	info, statErr := os.Stat(filepath.Join(abs, ".git"))
	if statErr != nil || !info.IsDir() {
		return nil, &ValidationError{Path: abs}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scraper{
		repoPath:   abs,
		runner:     runner,
		maxCommits: maxCommits,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// RepoPath returns the resolved repository root.
func (s *Scraper) RepoPath() string { return s.repoPath }

// Scrape runs every state query in sequence and folds the results into one
// normalized snapshot. Any command failure aborts the whole scrape; a
// partial snapshot is never returned.
func (s *Scraper) Scrape() (*schema.RepositorySnapshot, error) {
	s.logger.Debug("starting state scrape", zap.String("repo", s.repoPath))

	currentName, err := s.runner.Run("branch", "--show-current")
	if err != nil {
		return nil, errors.Wrap(err, "reading current branch")
	}
	currentName = strings.TrimSpace(currentName)

	branchOut, err := s.runner.Run("branch", "-vv")
	if err != nil {
		return nil, errors.Wrap(err, "listing branches")
	}
	localBranches := parseBranches(branchOut, s.logger)

	current := schema.BranchRecord{Name: currentName, IsCurrent: true, IsUpToDate: true}
	for _, b := range localBranches {
		if b.Name == currentName {
			current = b
			break
		}
	}

	remoteOut, err := s.runner.Run("remote", "-v")
	if err != nil {
		return nil, errors.Wrap(err, "listing remotes")
	}
	remotes := parseRemotes(remoteOut)

	remoteBranchOut, err := s.runner.Run("branch", "-r")
	if err != nil {
		return nil, errors.Wrap(err, "listing remote branches")
	}
	remoteBranches := parseRemoteBranches(remoteBranchOut)

	statusOut, err := s.runner.Run("status", "--porcelain")
	if err != nil {
		return nil, errors.Wrap(err, "reading status")
	}
	workingTree, stagingArea := parseStatus(statusOut)

	logOut, err := s.runner.Run("log", fmt.Sprintf("--max-count=%d", s.maxCommits), "--oneline", "--decorate")
	if err != nil {
		return nil, errors.Wrap(err, "reading log")
	}
	commits := parseCommits(logOut, s.runner, s.now, s.logger)

	stashOut, err := s.runner.Run("stash", "list")
	if err != nil {
		return nil, errors.Wrap(err, "listing stashes")
	}
	stashes := parseStashes(stashOut, s.runner, s.now, s.logger)

	states := detectSpecialStates(s.repoPath, s.runner)

	snapshot := schema.Normalize(schema.RepositorySnapshot{
		RepositoryPath:         s.repoPath,
		IsGitRepository:        true,
		WorkingDirectory:       s.workingDirectory(),
		CurrentBranch:          current,
		LocalBranches:          localBranches,
		RemoteBranches:         remoteBranches,
		Remotes:                remotes,
		WorkingDirectoryStatus: workingTree,
		StagingAreaStatus:      stagingArea,
		RecentCommits:          commits,
		Stashes:                stashes,
		IsMerging:              states.isMerging,
		IsRebasing:             states.isRebasing,
		IsDetachedHead:         states.isDetachedHead,
		CapturedAt:             s.now(),
	})

	s.logger.Debug("state scrape completed", zap.String("summary", snapshot.Summary()))
	return &snapshot, nil
}

// QuickStatus returns a short status line without building a full
// snapshot. It never returns an error: failures degrade to an "unable to
// determine" message.
func (s *Scraper) QuickStatus() string {
	out, err := s.runner.Run("status", "--short")
	if err != nil {
		s.logger.Warn("quick status failed", zap.Error(err))
		return "Unable to determine status"
	}
	if strings.TrimSpace(out) == "" {
		return "Working directory clean"
	}

	count := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return strconv.Itoa(count) + " files with changes"
}

// workingDirectory reports the caller's directory relative to the
// repository root, "." when outside it or unresolvable.
func (s *Scraper) workingDirectory() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	rel, err := filepath.Rel(s.repoPath, cwd)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "."
	}
	return rel
}

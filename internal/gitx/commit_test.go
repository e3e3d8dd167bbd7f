package gitx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRunner maps joined argument strings to canned outputs or errors.
type fakeRunner struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeRunner) Run(args ...string) (string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.responses[key], nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestParseCommitsHeadDecoration(t *testing.T) {
	runner := &fakeRunner{responses: map[string]string{
		"log -1 --format=%an <%ae>|%ai a1b2c3d":     "Jane Doe <jane@example.com>|2024-03-01 10:30:00 +0100",
		"diff-tree --no-commit-id --name-only -r a1b2c3d": "main.go\nREADME.md",
	}}

	commits := parseCommits("a1b2c3d (HEAD -> main) Fix bug", runner, fixedNow, zap.NewNop())
	require.Len(t, commits, 1)

	c := commits[0]
	assert.Equal(t, "a1b2c3d", c.Hash)
	assert.Equal(t, "a1b2c3d", c.ShortHash)
	assert.Equal(t, "Fix bug", c.Message)
	assert.True(t, c.IsHead)
	assert.Equal(t, "main", c.Branch)
	assert.Equal(t, "Jane Doe <jane@example.com>", c.Author)
	require.NotNil(t, c.FilesChanged)
	assert.Equal(t, 2, *c.FilesChanged)
	assert.Equal(t, 2024, c.Date.Year())
}

func TestParseCommitsNoDecorations(t *testing.T) {
	runner := &fakeRunner{responses: map[string]string{}}

	commits := parseCommits("deadbeef123 Plain message", runner, fixedNow, zap.NewNop())
	require.Len(t, commits, 1)

	c := commits[0]
	assert.False(t, c.IsHead)
	assert.Empty(t, c.Branch)
	assert.Equal(t, "Plain message", c.Message)
	assert.Equal(t, "deadbee", c.ShortHash)
}

func TestParseCommitsBranchDecorationWithoutHead(t *testing.T) {
	runner := &fakeRunner{}

	commits := parseCommits("abc1234 (feature-x) Add thing", runner, fixedNow, zap.NewNop())
	require.Len(t, commits, 1)
	assert.Equal(t, "feature-x", commits[0].Branch)
	assert.False(t, commits[0].IsHead)
}

func TestParseCommitsMessageWithParens(t *testing.T) {
	runner := &fakeRunner{}

	commits := parseCommits("abc1234 (HEAD -> main) Fix parser (again)", runner, fixedNow, zap.NewNop())
	require.Len(t, commits, 1)
	assert.Equal(t, "Fix parser (again)", commits[0].Message)
	assert.Equal(t, "main", commits[0].Branch)
}

func TestParseCommitsEnrichmentFailureKeepsCommit(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"log -1 --format=%an <%ae>|%ai abc1234": &CommandError{Command: "git log", Stderr: "boom", ExitCode: 1},
	}}

	commits := parseCommits("abc1234 Message", runner, fixedNow, zap.NewNop())
	require.Len(t, commits, 1)
	assert.Equal(t, "Unknown", commits[0].Author)
	assert.Equal(t, fixedNow(), commits[0].Date)
	assert.Nil(t, commits[0].FilesChanged)
}

func TestParseCommitsShortHashPrefix(t *testing.T) {
	full := "0123456789abcdef0123456789abcdef01234567"
	runner := &fakeRunner{}

	commits := parseCommits(full+" Some message", runner, fixedNow, zap.NewNop())
	require.Len(t, commits, 1)

	c := commits[0]
	assert.Len(t, c.ShortHash, 7)
	assert.True(t, strings.HasPrefix(c.Hash, c.ShortHash))
}

func TestParseCommitsOrderPreserved(t *testing.T) {
	runner := &fakeRunner{}
	out := "aaa1111 first\nbbb2222 second\nccc3333 third"

	commits := parseCommits(out, runner, fixedNow, zap.NewNop())
	require.Len(t, commits, 3)
	assert.Equal(t, "aaa1111", commits[0].Hash)
	assert.Equal(t, "ccc3333", commits[2].Hash)
}

func TestParseGitTimeZSuffix(t *testing.T) {
	ts := parseGitTime("2024-05-01T08:00:00Z", fixedNow)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.May, ts.Month())
}

func TestParseGitTimeMalformedFallsBack(t *testing.T) {
	ts := parseGitTime("not-a-date", fixedNow)
	assert.Equal(t, fixedNow(), ts)
}

func TestParseGitTimeOnlyTrailingZRewritten(t *testing.T) {
	// A Z anywhere other than the zone suffix must be left alone: this
	// string has no zone designator at the end, so it cannot parse and
	// falls back instead of being mangled mid-string.
	ts := parseGitTime("2024-05-01TZ08:00:00", fixedNow)
	assert.Equal(t, fixedNow(), ts)

	// An explicit offset is untouched.
	ts = parseGitTime("2024-05-01 08:00:00 +0200", fixedNow)
	assert.Equal(t, 2024, ts.Year())
	_, offset := ts.Zone()
	assert.Equal(t, 2*60*60, offset)
}

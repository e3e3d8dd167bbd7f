package gitx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpilot/cli/internal/schema"
)

func TestParseStatusStagedOnly(t *testing.T) {
	working, staging := parseStatus("M  file.txt")

	assert.Empty(t, working)
	require.Len(t, staging, 1)

	entry := staging[0]
	assert.Equal(t, "file.txt", entry.Path)
	assert.Equal(t, schema.StatusModified, entry.Status)
	assert.True(t, entry.IsStaged)
	assert.True(t, entry.IsTracked)
	assert.Equal(t, schema.ChangeStaged, entry.ChangeType)
	assert.False(t, entry.HasConflicts)
}

func TestParseStatusUnstagedOnly(t *testing.T) {
	working, staging := parseStatus(" M file.txt")

	assert.Empty(t, staging)
	require.Len(t, working, 1)

	entry := working[0]
	assert.Equal(t, schema.StatusModified, entry.Status)
	assert.False(t, entry.IsStaged)
	assert.True(t, entry.IsTracked)
	assert.Equal(t, schema.ChangeUnstaged, entry.ChangeType)
}

func TestParseStatusUntracked(t *testing.T) {
	working, staging := parseStatus("?? newfile.txt")

	require.Len(t, working, 1)
	// The index column is '?', not space, so the entry also lands in the
	// staging list per the dual-append rule.
	require.Len(t, staging, 1)

	entry := working[0]
	assert.Equal(t, "newfile.txt", entry.Path)
	assert.Equal(t, schema.StatusUntracked, entry.Status)
	assert.False(t, entry.IsStaged)
	assert.False(t, entry.IsTracked)
	assert.Empty(t, entry.ChangeType)

	// The staging-list copy keeps the same untracked classification.
	assert.False(t, staging[0].IsStaged)
	assert.Equal(t, schema.StatusUntracked, staging[0].Status)
}

func TestParseStatusUntrackedNotCountedAsStaged(t *testing.T) {
	working, staging := parseStatus("M  staged.txt\n?? new.txt")

	snap := schema.Normalize(schema.RepositorySnapshot{
		WorkingDirectoryStatus: working,
		StagingAreaStatus:      staging,
	})

	assert.Equal(t, 1, snap.StagedFiles)
	assert.Equal(t, 1, snap.UntrackedFiles)
	assert.Equal(t, 0, snap.ModifiedFiles)
}

func TestParseStatusBothColumns(t *testing.T) {
	working, staging := parseStatus("MM both.txt")

	require.Len(t, working, 1)
	require.Len(t, staging, 1)

	entry := working[0]
	assert.Equal(t, schema.StatusModified, entry.Status)
	assert.True(t, entry.IsStaged)
	assert.Equal(t, schema.ChangeBoth, entry.ChangeType)
}

func TestParseStatusConflict(t *testing.T) {
	working, _ := parseStatus("UU conflicted.txt")

	require.Len(t, working, 1)
	assert.True(t, working[0].HasConflicts)
	assert.Equal(t, schema.StatusUnmerged, working[0].Status)
}

func TestParseStatusRenameDetails(t *testing.T) {
	_, staging := parseStatus("R  old.txt -> new.txt")

	require.Len(t, staging, 1)
	assert.Equal(t, schema.StatusRenamed, staging[0].Status)
	assert.Equal(t, "old.txt -> new.txt", staging[0].Path)
	assert.Equal(t, "renamed from old.txt", staging[0].Details)
}

func TestParseStatusRenameWithoutArrow(t *testing.T) {
	// Short-form output may omit the arrow depending on flags; that means
	// no detail available, not an error.
	_, staging := parseStatus("R  new.txt")

	require.Len(t, staging, 1)
	assert.Empty(t, staging[0].Details)
}

func TestParseStatusUnknownCode(t *testing.T) {
	working, _ := parseStatus(" X weird.txt")

	require.Len(t, working, 1)
	assert.Equal(t, schema.StatusUnknown, working[0].Status)
}

func TestParseStatusSkipsBlankAndMalformedLines(t *testing.T) {
	working, staging := parseStatus("\n\n M \n M ok.txt\n")

	// The line with an empty path is dropped; the valid one survives.
	require.Len(t, working, 1)
	assert.Equal(t, "ok.txt", working[0].Path)
	assert.Empty(t, staging)
}

func TestParseStatusEmptyOutput(t *testing.T) {
	working, staging := parseStatus("")

	assert.Empty(t, working)
	assert.Empty(t, staging)
	assert.NotNil(t, working)
	assert.NotNil(t, staging)
}

func TestParseStatusPreservesOrder(t *testing.T) {
	working, _ := parseStatus(" M b.txt\n M a.txt\n?? c.txt")

	require.Len(t, working, 3)
	assert.Equal(t, "b.txt", working[0].Path)
	assert.Equal(t, "a.txt", working[1].Path)
	assert.Equal(t, "c.txt", working[2].Path)
}

func TestParseStatusIdempotent(t *testing.T) {
	input := "M  a.txt\n M b.txt\n?? c.txt\nUU d.txt"

	w1, s1 := parseStatus(input)
	w2, s2 := parseStatus(input)

	assert.Equal(t, w1, w2)
	assert.Equal(t, s1, s2)
}

func TestClassifyFilePartition(t *testing.T) {
	// Every valid code pair lands in exactly one of the four classes.
	codes := []byte{' ', 'M', 'A', 'D', 'R', 'C', 'U', '?'}
	for _, index := range codes {
		for _, work := range codes {
			if index == ' ' && work == ' ' {
				continue
			}
			entry := classifyFile("f", index, work)

			switch {
			case index == '?' || work == '?':
				assert.Equal(t, schema.StatusUntracked, entry.Status)
				assert.False(t, entry.IsStaged)
				assert.False(t, entry.IsTracked)
				assert.Empty(t, entry.ChangeType)
			case index == ' ':
				assert.Equal(t, schema.ChangeUnstaged, entry.ChangeType)
			case work == ' ':
				assert.Equal(t, schema.ChangeStaged, entry.ChangeType)
			default:
				assert.Equal(t, schema.ChangeBoth, entry.ChangeType)
			}
		}
	}
}

package gitx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpilot/cli/internal/schema"
)

func TestParseRemotesDeduplicates(t *testing.T) {
	out := "origin\thttps://github.com/user/repo.git (fetch)\n" +
		"origin\thttps://github.com/user/repo.git (push)"

	remotes := parseRemotes(out)
	require.Len(t, remotes, 1)

	r := remotes[0]
	assert.Equal(t, "origin", r.Name)
	assert.Equal(t, "https://github.com/user/repo.git", r.URL)
	assert.Equal(t, schema.URLHTTPS, r.URLType)
	assert.True(t, r.IsDefaultPull)
	assert.True(t, r.IsDefaultPush)
}

func TestParseRemotesFirstURLWins(t *testing.T) {
	out := "origin\thttps://github.com/a/b.git (fetch)\n" +
		"origin\tgit@github.com:a/b.git (push)"

	remotes := parseRemotes(out)
	require.Len(t, remotes, 1)
	assert.Equal(t, "https://github.com/a/b.git", remotes[0].URL)
	assert.Equal(t, schema.URLHTTPS, remotes[0].URLType)
	assert.True(t, remotes[0].IsDefaultPush)
}

func TestParseRemotesInsertionOrder(t *testing.T) {
	out := "upstream\tgit://host/repo.git (fetch)\n" +
		"origin\tssh://git@host/repo.git (fetch)\n" +
		"origin\tssh://git@host/repo.git (push)"

	remotes := parseRemotes(out)
	require.Len(t, remotes, 2)
	assert.Equal(t, "upstream", remotes[0].Name)
	assert.Equal(t, "origin", remotes[1].Name)
}

func TestClassifyURL(t *testing.T) {
	cases := map[string]string{
		"https://github.com/a/b.git": schema.URLHTTPS,
		"ssh://git@host/repo.git":    schema.URLSSH,
		"git@github.com:a/b.git":     schema.URLSSH,
		"git://host/repo.git":        schema.URLGit,
		"/local/path/repo":           schema.URLUnknown,
	}
	for url, want := range cases {
		assert.Equal(t, want, classifyURL(url), url)
	}
}

func TestParseRemotesSkipsMalformedLines(t *testing.T) {
	remotes := parseRemotes("justonename\n\norigin https://x (fetch)")
	require.Len(t, remotes, 1)
	assert.Equal(t, "origin", remotes[0].Name)
}

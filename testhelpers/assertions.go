// Package testhelpers provides testing utilities for git-instafix,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. Useful for test setup code where errors
// are not expected.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectCommits asserts that the newest commits reachable from rev have the
// expected subjects, newest first.
func ExpectCommits(t *testing.T, repo *GitRepo, rev string, expected []string) {
	t.Helper()

	cmd := exec.Command("git", "-C", repo.Dir, "log", "--format=%s", rev)
	output, err := cmd.Output()
	require.NoError(t, err, "Failed to list commits")

	commits := splitLines(string(output))
	if len(commits) < len(expected) {
		require.Fail(t, "Not enough commits", "Expected %d commits, got %d", len(expected), len(commits))
		return
	}

	require.Equal(t, expected, commits[:len(expected)], "Commits do not match")
}

// ExpectFileAt asserts the content of path in the tree of rev.
func ExpectFileAt(t *testing.T, repo *GitRepo, rev, path, expected string) {
	t.Helper()

	content, err := repo.ShowFile(rev, path)
	require.NoError(t, err)
	require.Equal(t, expected, content, "unexpected content of %s at %s", path, rev)
}

// ExpectSameRevision asserts that all revs resolve to the same commit.
func ExpectSameRevision(t *testing.T, repo *GitRepo, revs ...string) {
	t.Helper()

	var first string
	for i, rev := range revs {
		sha, err := repo.GetRevision(rev)
		require.NoError(t, err)
		if i == 0 {
			first = sha
			continue
		}
		require.Equal(t, first, sha, "%s and %s differ", revs[0], rev)
	}
}

// ExpectStatus asserts the porcelain status of the work tree, ignoring line order.
func ExpectStatus(t *testing.T, repo *GitRepo, expected ...string) {
	t.Helper()

	status, err := repo.Status()
	require.NoError(t, err)
	var lines []string
	for _, line := range strings.Split(status, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(expected) == 0 {
		require.Empty(t, lines, "expected a clean work tree")
		return
	}
	require.ElementsMatch(t, expected, lines)
}

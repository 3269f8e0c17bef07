package cli_test

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"instafix.dev/instafix/testhelpers"
)

// TestShell wraps a test scene and runs the git-instafix binary in it, so
// tests read like a terminal session.
type TestShell struct {
	t          *testing.T
	scene      *testhelpers.Scene
	binaryPath string
	lastOutput string
}

// NewTestShell creates a shell in a fresh scene built by setup
func NewTestShell(t *testing.T, setup testhelpers.SceneSetup) *TestShell {
	t.Helper()
	binaryPath, err := testhelpers.GetSharedBinaryPath()
	require.NoError(t, err, "failed to build git-instafix")

	scene := testhelpers.NewScene(t, setup)
	t.Setenv("GIT_INSTAFIX_LOG_FILE", filepath.Join(t.TempDir(), "git-instafix.log"))
	return &TestShell{t: t, scene: scene, binaryPath: binaryPath}
}

// Run executes git-instafix with args and requires it to succeed
func (s *TestShell) Run(args ...string) *TestShell {
	s.t.Helper()
	err := s.exec(args)
	require.NoError(s.t, err, "$ git-instafix %s\n%s", strings.Join(args, " "), s.lastOutput)
	return s
}

// RunExpectError executes git-instafix with args and requires it to fail
func (s *TestShell) RunExpectError(args ...string) *TestShell {
	s.t.Helper()
	err := s.exec(args)
	require.Error(s.t, err, "$ git-instafix %s (expected error)\n%s", strings.Join(args, " "), s.lastOutput)
	return s
}

func (s *TestShell) exec(args []string) error {
	cmd := exec.Command(s.binaryPath, args...)
	cmd.Dir = s.scene.Dir
	output, err := cmd.CombinedOutput()
	s.lastOutput = string(output)
	return err
}

// Git executes a raw git command
func (s *TestShell) Git(args ...string) *TestShell {
	s.t.Helper()
	require.NoError(s.t, s.scene.Repo.RunGitCommand(args...))
	return s
}

// Write modifies a file and stages it
func (s *TestShell) Write(prefix, content string) *TestShell {
	s.t.Helper()
	require.NoError(s.t, s.scene.Repo.CreateChange(content, prefix, false))
	return s
}

// WriteUnstaged modifies a file without staging it
func (s *TestShell) WriteUnstaged(prefix, content string) *TestShell {
	s.t.Helper()
	require.NoError(s.t, s.scene.Repo.CreateChange(content, prefix, true))
	return s
}

// Rev resolves rev to a commit hash
func (s *TestShell) Rev(rev string) string {
	s.t.Helper()
	return testhelpers.Must(s.scene.Repo.GetRevision(rev))
}

// OutputContains asserts the last output contains substr
func (s *TestShell) OutputContains(substr string) *TestShell {
	s.t.Helper()
	require.Contains(s.t, s.lastOutput, substr)
	return s
}

// Commits asserts the summaries reachable from rev, newest first
func (s *TestShell) Commits(rev string, expected ...string) *TestShell {
	s.t.Helper()
	testhelpers.ExpectCommits(s.t, s.scene.Repo, rev, expected)
	return s
}

// FileAt asserts the content of the file for prefix at rev
func (s *TestShell) FileAt(rev, prefix, expected string) *TestShell {
	s.t.Helper()
	testhelpers.ExpectFileAt(s.t, s.scene.Repo, rev, testhelpers.FileName(prefix), expected)
	return s
}

// Status asserts the short status of the work tree
func (s *TestShell) Status(expected ...string) *TestShell {
	s.t.Helper()
	testhelpers.ExpectStatus(s.t, s.scene.Repo, expected...)
	return s
}

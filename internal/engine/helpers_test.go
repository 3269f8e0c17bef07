package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"instafix.dev/instafix/internal/engine"
	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
	"instafix.dev/instafix/testhelpers"
)

func newEngine(t *testing.T, scene *testhelpers.Scene) *engine.Engine {
	t.Helper()
	repo, err := git.OpenRepository(scene.Dir)
	require.NoError(t, err)
	eng, err := engine.New(context.Background(), repo, engine.Options{})
	require.NoError(t, err)
	return eng
}

// selectBySummary picks the candidate whose summary matches
type selectBySummary struct {
	summary string
	seen    []engine.Candidate
}

func (s *selectBySummary) SelectTarget(_ context.Context, candidates []engine.Candidate) (*git.Commit, error) {
	s.seen = candidates
	for _, c := range candidates {
		if c.Commit.Summary() == s.summary {
			return c.Commit, nil
		}
	}
	return nil, instafixerrors.ErrCanceled
}

type cancelSelector struct{}

func (cancelSelector) SelectTarget(context.Context, []engine.Candidate) (*git.Commit, error) {
	return nil, instafixerrors.ErrCanceled
}

type fixedEditor struct {
	message string
	err     error
}

func (f fixedEditor) EditMessage(context.Context, *git.Commit) (string, error) {
	return f.message, f.err
}

// cancelOnLog cancels an operation as soon as the engine logs a line starting with prefix
type cancelOnLog struct {
	prefix string
	cancel context.CancelFunc
}

func (c cancelOnLog) Debug(format string, _ ...interface{}) {
	if strings.HasPrefix(format, c.prefix) {
		c.cancel()
	}
}

func fixup(t *testing.T, eng *engine.Engine, summary string) (*engine.FixupResult, error) {
	t.Helper()
	return eng.Fixup(context.Background(), engine.FixupOptions{
		Operation: engine.Operation{ID: "test", Command: "git-instafix"},
		Selector:  &selectBySummary{summary: summary},
	})
}

// rejectRefUpdates installs a reference-transaction hook that aborts any
// transaction touching ref
func rejectRefUpdates(t *testing.T, scene *testhelpers.Scene, ref string) {
	t.Helper()
	hook := "#!/bin/sh\n" +
		"[ \"$1\" = prepared ] || exit 0\n" +
		"status=0\n" +
		"while read old new name; do\n" +
		"  [ \"$name\" = \"" + ref + "\" ] && status=1\n" +
		"done\n" +
		"exit $status\n"
	hooks := filepath.Join(scene.Dir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooks, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(hooks, "reference-transaction"), []byte(hook), 0700)) //nolint:gosec
}

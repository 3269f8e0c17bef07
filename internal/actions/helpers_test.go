package actions_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"instafix.dev/instafix/internal/git"
	"instafix.dev/instafix/internal/runtime"
	"instafix.dev/instafix/internal/tui"
	"instafix.dev/instafix/testhelpers"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// newContext returns a runtime context for scene whose console output is captured
func newContext(t *testing.T, scene *testhelpers.Scene) (*runtime.Context, *bytes.Buffer) {
	t.Helper()
	repo, err := git.OpenRepository(scene.Dir)
	require.NoError(t, err)

	var out bytes.Buffer
	splog, err := tui.NewSplogWithConfig(&out, "")
	require.NoError(t, err)

	ctx, err := runtime.NewContext(context.Background(), repo, splog)
	require.NoError(t, err)
	return ctx, &out
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

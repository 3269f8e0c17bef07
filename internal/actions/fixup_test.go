package actions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"instafix.dev/instafix/internal/actions"
	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/testhelpers"
)

func TestFixupAction(t *testing.T) {
	t.Run("moves the staged change and reports each branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a", "b", "c"))
		require.NoError(t, scene.Repo.CreateBranchAt("x", "feature~1"))
		require.NoError(t, scene.Repo.CreateChange("a2", "a", false))
		oldFeature := testhelpers.Must(scene.Repo.GetRevision("feature"))
		oldX := testhelpers.Must(scene.Repo.GetRevision("x"))
		oldA := testhelpers.Must(scene.Repo.GetRevision("feature~2"))

		ctx, out := newContext(t, scene)
		err := actions.FixupAction(ctx, actions.FixupOptions{
			MaxCommits: 15,
			Pattern:    "a",
			Command:    "git-instafix",
		})
		require.NoError(t, err)

		newFeature := testhelpers.Must(scene.Repo.GetRevision("feature"))
		newX := testhelpers.Must(scene.Repo.GetRevision("x"))
		output := out.String()
		require.Contains(t, output, "Staged changes:")
		require.Contains(t, output, "+a2")
		require.Contains(t, output, "Selected "+oldA[:10]+" a")
		require.Contains(t, output, "updated branch x: "+oldX[:15]+" -> "+newX[:15])
		require.Contains(t, output, "updated branch feature: "+oldFeature[:15]+" -> "+newFeature[:15])

		testhelpers.ExpectCommits(t, scene.Repo, "feature", []string{"c", "b", "a", "base"})
		testhelpers.ExpectFileAt(t, scene.Repo, "feature~2", testhelpers.FileName("a"), "a2")
		testhelpers.ExpectStatus(t, scene.Repo)
	})

	t.Run("nothing staged without a terminal", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a"))
		require.NoError(t, scene.Repo.CreateChange("a2", "a", true))

		ctx, _ := newContext(t, scene)
		err := actions.FixupAction(ctx, actions.FixupOptions{MaxCommits: 15, Pattern: "a"})
		require.ErrorIs(t, err, instafixerrors.ErrNoStagedChanges)
		testhelpers.ExpectStatus(t, scene.Repo, " M "+testhelpers.FileName("a"))
	})

	t.Run("no commit matches the pattern", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a", "b"))
		require.NoError(t, scene.Repo.CreateChange("a2", "a", false))
		before := testhelpers.Must(scene.Repo.GetRevision("feature"))

		ctx, _ := newContext(t, scene)
		err := actions.FixupAction(ctx, actions.FixupOptions{MaxCommits: 15, Pattern: "zzz"})
		require.ErrorContains(t, err, `has a summary containing "zzz"`)
		require.Equal(t, before, testhelpers.Must(scene.Repo.GetRevision("feature")))
		testhelpers.ExpectStatus(t, scene.Repo, "M  "+testhelpers.FileName("a"))
	})

	t.Run("apply conflict prints manual instructions", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup())
		require.NoError(t, scene.Repo.CommitFile("f.txt", "one\n", "f1"))
		require.NoError(t, scene.Repo.CommitFile("f.txt", "two\n", "f2"))
		require.NoError(t, scene.Repo.WriteFile("f.txt", "three\n"))
		require.NoError(t, scene.Repo.Stage("f.txt"))
		target := testhelpers.Must(scene.Repo.GetRevision("feature~1"))

		ctx, out := newContext(t, scene)
		err := actions.FixupAction(ctx, actions.FixupOptions{MaxCommits: 15, Pattern: "f1"})
		require.ErrorIs(t, err, instafixerrors.ErrApplyConflict)

		output := out.String()
		require.Contains(t, output, "The staged changes do not apply to "+target[:10]+" f1")
		require.Contains(t, output, "f.txt")
		require.Contains(t, output, "git commit --fixup="+target)
		require.Contains(t, output, "git rebase --interactive --autosquash "+target+"~")
		testhelpers.ExpectStatus(t, scene.Repo, "M  f.txt")
	})

	t.Run("replay conflict names the commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("one"))
		require.NoError(t, scene.Repo.CommitFile("g.txt", "c2\n", "add g"))
		require.NoError(t, scene.Repo.RunGitCommand("rm", "-q", "g.txt"))
		require.NoError(t, scene.Repo.RunGitCommand("commit", "-q", "-m", "remove g"))
		require.NoError(t, scene.Repo.WriteFile("g.txt", "staged\n"))
		require.NoError(t, scene.Repo.Stage("g.txt"))
		addG := testhelpers.Must(scene.Repo.GetRevision("feature~1"))
		target := testhelpers.Must(scene.Repo.GetRevision("feature~2"))

		ctx, out := newContext(t, scene)
		err := actions.FixupAction(ctx, actions.FixupOptions{MaxCommits: 15, Pattern: "one"})
		require.ErrorIs(t, err, instafixerrors.ErrReplayConflict)

		output := out.String()
		require.Contains(t, output, "conflicts with "+addG[:10]+" add g")
		require.Contains(t, output, "git commit --fixup="+target)
		testhelpers.ExpectStatus(t, scene.Repo, "A  g.txt")
	})

	t.Run("partial ref failure still reports the moved branches", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a", "b"))
		require.NoError(t, scene.Repo.CreateBranchAt("x", "feature~1"))
		require.NoError(t, scene.Repo.CreateChange("a2", "a", false))
		oldFeature := testhelpers.Must(scene.Repo.GetRevision("feature"))
		rejectRefUpdates(t, scene, "refs/heads/x")

		ctx, out := newContext(t, scene)
		err := actions.FixupAction(ctx, actions.FixupOptions{MaxCommits: 15, Pattern: "a"})
		require.ErrorIs(t, err, instafixerrors.ErrRefUpdate)
		require.True(t, instafixerrors.IsPartial(err))
		require.ErrorContains(t, err, "history was partially changed")

		newFeature := testhelpers.Must(scene.Repo.GetRevision("feature"))
		require.Contains(t, out.String(), "updated branch feature: "+oldFeature[:15]+" -> "+newFeature[:15])
		require.NotContains(t, out.String(), "updated branch x")
	})
}

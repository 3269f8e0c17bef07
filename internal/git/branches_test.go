package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
	"instafix.dev/instafix/testhelpers"
)

func TestCurrentBranch(t *testing.T) {
	t.Run("returns the checked out branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a"))
		repo := openRepo(t, scene)

		branch, err := repo.CurrentBranch()
		require.NoError(t, err)
		require.Equal(t, "feature", branch)
	})

	t.Run("detached HEAD is not on a branch", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a"))
		require.NoError(t, scene.Repo.CheckoutDetached("HEAD"))
		repo := openRepo(t, scene)

		_, err := repo.CurrentBranch()
		require.ErrorIs(t, err, instafixerrors.ErrNotOnBranch)
	})
}

func TestLocalBranches(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a"))
	require.NoError(t, scene.Repo.CreateBranch("alias"))
	repo := openRepo(t, scene)

	head := testhelpers.Must(scene.Repo.GetCurrentSHA())
	mainSHA := testhelpers.Must(scene.Repo.GetRevision("main"))

	branches, err := repo.LocalBranches()
	require.NoError(t, err)
	require.Equal(t, []git.Branch{
		{Name: "alias", Hash: head},
		{Name: "feature", Hash: head},
		{Name: "main", Hash: mainSHA},
	}, branches)
	require.Equal(t, "refs/heads/alias", branches[0].RefName())
}

func TestUpdateRef(t *testing.T) {
	t.Run("moves the ref when the old value matches", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a"))
		require.NoError(t, scene.Repo.CreateBranch("other"))
		repo := openRepo(t, scene)

		head := testhelpers.Must(scene.Repo.GetCurrentSHA())
		mainSHA := testhelpers.Must(scene.Repo.GetRevision("main"))

		err := repo.UpdateRef(context.Background(), "refs/heads/other", mainSHA, head, "test")
		require.NoError(t, err)
		testhelpers.ExpectSameRevision(t, scene.Repo, "other", "main")
	})

	t.Run("rejects a stale old value", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a"))
		require.NoError(t, scene.Repo.CreateBranch("other"))
		repo := openRepo(t, scene)

		mainSHA := testhelpers.Must(scene.Repo.GetRevision("main"))

		err := repo.UpdateRef(context.Background(), "refs/heads/other", mainSHA, mainSHA, "test")
		require.Error(t, err)
		testhelpers.ExpectSameRevision(t, scene.Repo, "other", "feature")
	})
}

func TestTrackingUpstream(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.FeatureBranchSetup("a"))
	repo := openRepo(t, scene)
	require.Equal(t, "", repo.TrackingUpstream(context.Background()))

	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "feature"))

	require.Equal(t, "origin/feature", repo.TrackingUpstream(context.Background()))
}

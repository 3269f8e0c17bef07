package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"instafix.dev/instafix/testhelpers"
)

func TestConfigGet(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	repo := openRepo(t, scene)
	ctx := context.Background()

	_, ok, err := repo.ConfigGet(ctx, "instafix.default-upstream-branch")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, scene.Repo.RunGitCommand("config", "instafix.default-upstream-branch", "develop"))
	value, ok, err := repo.ConfigGet(ctx, "instafix.default-upstream-branch")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "develop", value)

	require.NoError(t, scene.Repo.RunGitCommand("config", "instafix.squash", "yes"))
	b, ok, err := repo.ConfigGetBool(ctx, "instafix.squash")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, b)

	require.Equal(t, "#", repo.CommentChar(ctx))
	require.NoError(t, scene.Repo.RunGitCommand("config", "core.commentChar", ";"))
	require.Equal(t, ";", repo.CommentChar(ctx))
}

func TestConfigSetAndUnset(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	repo := openRepo(t, scene)
	ctx := context.Background()

	require.NoError(t, repo.ConfigSet(ctx, "instafix.max-commits", "7"))
	value, ok, err := repo.ConfigGet(ctx, "instafix.max-commits")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "7", value)

	require.NoError(t, repo.ConfigUnset(ctx, "instafix.max-commits"))
	_, ok, err = repo.ConfigGet(ctx, "instafix.max-commits")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.ConfigUnset(ctx, "instafix.max-commits"))
}

func TestIsRebaseInProgress(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		if err := s.Repo.CommitFile("a.txt", "a\n", "add a"); err != nil {
			return err
		}
		if err := s.Repo.CreateAndCheckoutBranch("feature"); err != nil {
			return err
		}
		if err := s.Repo.CommitFile("a.txt", "feature\n", "feature"); err != nil {
			return err
		}
		if err := s.Repo.CheckoutBranch("main"); err != nil {
			return err
		}
		return s.Repo.CommitFile("a.txt", "main\n", "main")
	})
	repo := openRepo(t, scene)
	ctx := context.Background()

	require.False(t, repo.IsRebaseInProgress(ctx))

	require.NoError(t, scene.Repo.CheckoutBranch("feature"))
	require.Error(t, scene.Repo.RunGitCommand("rebase", "main"))
	require.True(t, repo.IsRebaseInProgress(ctx))

	require.NoError(t, scene.Repo.RunGitCommand("rebase", "--abort"))
	require.False(t, repo.IsRebaseInProgress(ctx))
}

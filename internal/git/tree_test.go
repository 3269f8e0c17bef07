package git_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
	"instafix.dev/instafix/testhelpers"
)

func TestApplyPatchToTree(t *testing.T) {
	t.Run("applies the staged patch to an older commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CommitFile("a.txt", "one\n", "add a"); err != nil {
				return err
			}
			return s.Repo.CommitFile("b.txt", "b\n", "add b")
		})
		repo := openRepo(t, scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.WriteFile("a.txt", "one\ntwo\n"))
		require.NoError(t, scene.Repo.Stage("a.txt"))
		patch, err := repo.StagedPatch(ctx)
		require.NoError(t, err)

		target := testhelpers.Must(scene.Repo.GetRevision("HEAD~1"))
		tree, err := repo.ApplyPatchToTree(ctx, target, patch)
		require.NoError(t, err)

		content := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("cat-file", "-p", tree+":a.txt"))
		require.Equal(t, "one\ntwo", content)
		names := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("ls-tree", "--name-only", tree))
		require.Equal(t, "a.txt", names)

		// the real index is untouched
		testhelpers.ExpectStatus(t, scene.Repo, "M  a.txt")
	})

	t.Run("reports conflicting paths", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CommitFile("a.txt", "one\n", "add a"); err != nil {
				return err
			}
			return s.Repo.CommitFile("a.txt", "changed\n", "change a")
		})
		repo := openRepo(t, scene)
		ctx := context.Background()

		require.NoError(t, scene.Repo.WriteFile("a.txt", "changed again\n"))
		require.NoError(t, scene.Repo.Stage("a.txt"))
		patch, err := repo.StagedPatch(ctx)
		require.NoError(t, err)

		target := testhelpers.Must(scene.Repo.GetRevision("HEAD~1"))
		_, err = repo.ApplyPatchToTree(ctx, target, patch)
		require.ErrorIs(t, err, instafixerrors.ErrApplyConflict)

		var applyErr *instafixerrors.ApplyConflictError
		require.ErrorAs(t, err, &applyErr)
		require.Equal(t, target, applyErr.Target)
		require.Equal(t, []string{"a.txt"}, applyErr.Paths)
	})
}

func TestMergeTree(t *testing.T) {
	t.Run("clean merge", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CommitFile("a.txt", "a\n", "add a"); err != nil {
				return err
			}
			if err := s.Repo.CreateBranch("ours"); err != nil {
				return err
			}
			return s.Repo.CommitFile("b.txt", "b\n", "add b")
		})
		require.NoError(t, scene.Repo.CheckoutBranch("ours"))
		require.NoError(t, scene.Repo.CommitFile("c.txt", "c\n", "add c"))
		repo := openRepo(t, scene)

		base := testhelpers.Must(scene.Repo.GetRevision("main~1"))
		result, err := repo.MergeTree(context.Background(), base, "ours", "main")
		require.NoError(t, err)
		require.True(t, result.Clean())

		names := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("ls-tree", "--name-only", result.Tree))
		require.Equal(t, "a.txt\nb.txt\nc.txt", names)
	})

	t.Run("conflicts are listed", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CommitFile("a.txt", "a\n", "add a"); err != nil {
				return err
			}
			if err := s.Repo.CreateBranch("ours"); err != nil {
				return err
			}
			return s.Repo.CommitFile("a.txt", "theirs\n", "theirs")
		})
		require.NoError(t, scene.Repo.CheckoutBranch("ours"))
		require.NoError(t, scene.Repo.CommitFile("a.txt", "ours\n", "ours"))
		repo := openRepo(t, scene)

		base := testhelpers.Must(scene.Repo.GetRevision("main~1"))
		result, err := repo.MergeTree(context.Background(), base, "ours", "main")
		require.NoError(t, err)
		require.False(t, result.Clean())
		require.Equal(t, []string{"a.txt"}, result.Conflicts)
	})

	t.Run("edits to different lines of one file merge", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CommitFile("a.txt", "1\n2\n3\n4\n5\n6\n", "add a"); err != nil {
				return err
			}
			if err := s.Repo.CreateBranch("ours"); err != nil {
				return err
			}
			return s.Repo.CommitFile("a.txt", "1\n2\n3\n4\n5\nsix\n", "theirs")
		})
		require.NoError(t, scene.Repo.CheckoutBranch("ours"))
		require.NoError(t, scene.Repo.CommitFile("a.txt", "one\n2\n3\n4\n5\n6\n", "ours"))
		repo := openRepo(t, scene)

		base := testhelpers.Must(scene.Repo.GetRevision("main~1"))
		result, err := repo.MergeTree(context.Background(), base, "ours", "main")
		require.NoError(t, err)
		require.True(t, result.Clean())

		content := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("cat-file", "-p", result.Tree+":a.txt"))
		require.Equal(t, "one\n2\n3\n4\n5\nsix", content)
		// the real index is untouched
		testhelpers.ExpectStatus(t, scene.Repo)
	})

	t.Run("deletions on one side are kept", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CommitFile("a.txt", "a\n", "add a"); err != nil {
				return err
			}
			if err := s.Repo.CommitFile("b.txt", "b\n", "add b"); err != nil {
				return err
			}
			if err := s.Repo.CreateBranch("ours"); err != nil {
				return err
			}
			return s.Repo.RunGitCommand("rm", "-q", "b.txt")
		})
		require.NoError(t, scene.Repo.RunGitCommand("commit", "-q", "-m", "remove b"))
		require.NoError(t, scene.Repo.CheckoutBranch("ours"))
		require.NoError(t, scene.Repo.CommitFile("c.txt", "c\n", "add c"))
		repo := openRepo(t, scene)

		base := testhelpers.Must(scene.Repo.GetRevision("main~1"))
		result, err := repo.MergeTree(context.Background(), base, "ours", "main")
		require.NoError(t, err)
		require.True(t, result.Clean())

		names := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("ls-tree", "--name-only", result.Tree))
		require.Equal(t, "a.txt\nc.txt", names)
	})

	t.Run("modify against delete is a conflict", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CommitFile("a.txt", "a\n", "add a"); err != nil {
				return err
			}
			if err := s.Repo.CreateBranch("ours"); err != nil {
				return err
			}
			return s.Repo.RunGitCommand("rm", "-q", "a.txt")
		})
		require.NoError(t, scene.Repo.RunGitCommand("commit", "-q", "-m", "remove a"))
		require.NoError(t, scene.Repo.CheckoutBranch("ours"))
		require.NoError(t, scene.Repo.CommitFile("a.txt", "changed\n", "change a"))
		repo := openRepo(t, scene)

		base := testhelpers.Must(scene.Repo.GetRevision("main~1"))
		result, err := repo.MergeTree(context.Background(), base, "ours", "main")
		require.NoError(t, err)
		require.False(t, result.Clean())
		require.Equal(t, []string{"a.txt"}, result.Conflicts)
	})
}

func TestCommitTree(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	repo := openRepo(t, scene)

	head := testhelpers.Must(scene.Repo.GetCurrentSHA())
	tree := testhelpers.Must(scene.Repo.GetRevision("HEAD^{tree}"))
	when := time.Date(2020, 1, 2, 3, 4, 5, 0, time.FixedZone("", 2*60*60))

	sha, err := repo.CommitTree(context.Background(), git.CommitTreeOptions{
		Tree:        tree,
		Parents:     []string{head},
		Message:     "subject\n\nbody\n",
		AuthorName:  "Original Author",
		AuthorEmail: "original@example.com",
		AuthorWhen:  when,
	})
	require.NoError(t, err)

	commit, err := repo.CommitByHash(sha)
	require.NoError(t, err)
	require.Equal(t, "subject\n\nbody\n", commit.Message)
	require.Equal(t, "Original Author", commit.AuthorName)
	require.Equal(t, "original@example.com", commit.AuthorEmail)
	require.True(t, when.Equal(commit.AuthorWhen))
	require.Equal(t, []string{head}, commit.Parents)

	committer := testhelpers.Must(scene.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%cn", sha))
	require.Equal(t, "Test User", committer)

	// no ref moved
	require.Equal(t, head, testhelpers.Must(scene.Repo.GetCurrentSHA()))
}

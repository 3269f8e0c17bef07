package testhelpers

import (
	"os"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository,
// and changes into it. Global and system git config are ignored for the duration
// of the test so user settings (signing, hooks, editors) cannot leak in.
// Cleanup is registered with t.Cleanup().
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_INSTAFIX_UPSTREAM", "")
	t.Setenv("GIT_INSTAFIX_MAX_COMMITS", "")
	t.Setenv("GIT_INSTAFIX_REQUIRE_NEWLINE", "")
	t.Setenv("GIT_INSTAFIX_SQUASH", "")

	tmpDir := t.TempDir()

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	t.Chdir(tmpDir)

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// BasicSceneSetup is a setup function that creates a basic scene with a single commit.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// FeatureBranchSetup creates a root commit on main and checks out a feature
// branch carrying one commit per message, each touching its own file.
func FeatureBranchSetup(messages ...string) SceneSetup {
	return func(scene *Scene) error {
		if err := scene.Repo.CreateChangeAndCommit("base", "base"); err != nil {
			return err
		}
		if err := scene.Repo.CreateAndCheckoutBranch("feature"); err != nil {
			return err
		}
		for _, msg := range messages {
			if err := scene.Repo.CreateChangeAndCommit(msg, msg); err != nil {
				return err
			}
		}
		return nil
	}
}

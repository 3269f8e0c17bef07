package cli_test

import (
	"testing"

	"instafix.dev/instafix/testhelpers"
)

func TestFixupCommand(t *testing.T) {
	t.Run("amends the commit matching the pattern", func(t *testing.T) {
		sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a", "b", "c"))
		oldFeature := sh.Rev("feature")

		sh.Write("a", "a2").
			WriteUnstaged("c", "c work").
			Run("-P", "a").
			OutputContains("Selected ").
			OutputContains("updated branch feature: "+oldFeature[:15]+" -> ").
			Commits("feature", "c", "b", "a", "base").
			FileAt("feature~2", "a", "a2").
			FileAt("feature", "c", "c").
			Status(" M " + testhelpers.FileName("c"))
	})

	t.Run("nothing staged", func(t *testing.T) {
		sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a"))

		sh.RunExpectError("-P", "a").
			OutputContains("nothing staged")
	})

	t.Run("upstream flag limits the range", func(t *testing.T) {
		sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a", "b"))
		sh.Git("branch", "mid", "feature~1")

		sh.Write("b", "b2").
			RunExpectError("--upstream", "mid", "-P", "a").
			OutputContains(`has a summary containing "a"`).
			Run("-u", "mid", "-P", "b").
			FileAt("feature", "b", "b2").
			Commits("feature", "b", "a", "base")
	})

	t.Run("upstream from git config", func(t *testing.T) {
		sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a", "b"))
		sh.Git("branch", "mid", "feature~1").
			Git("config", "instafix.default-upstream-branch", "mid")

		sh.Write("a", "a2").
			RunExpectError("-P", "a").
			OutputContains(`has a summary containing "a"`)
	})

	t.Run("upstream naming the current branch", func(t *testing.T) {
		sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a"))

		sh.Write("a", "a2").
			RunExpectError("-u", "feature", "-P", "a").
			OutputContains("is the current branch")
	})

	t.Run("max commits limits the candidates", func(t *testing.T) {
		sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a", "b"))

		sh.Write("a", "a2").
			RunExpectError("--max-commits", "1", "-P", "a").
			OutputContains(`has a summary containing "a"`).
			RunExpectError("--max-commits", "0", "-P", "a").
			OutputContains("--max-commits must be positive")
	})

	t.Run("apply conflict explains the manual steps", func(t *testing.T) {
		sh := NewTestShell(t, testhelpers.FeatureBranchSetup())
		sh.Write("f", "one\n").
			Git("commit", "-q", "-m", "f1").
			Write("f", "two\n").
			Git("commit", "-q", "-m", "f2").
			Write("f", "three\n")
		target := sh.Rev("feature~1")

		sh.RunExpectError("-P", "f1").
			OutputContains("git commit --fixup=" + target).
			OutputContains("git rebase --interactive --autosquash " + target + "~").
			Status("M  " + testhelpers.FileName("f"))
	})
}

func TestUndoCommand(t *testing.T) {
	t.Run("no history", func(t *testing.T) {
		sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a"))

		sh.Run("undo").
			OutputContains("No undo history available")
	})

	t.Run("restores the last fixup", func(t *testing.T) {
		sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a", "b"))
		oldFeature := sh.Rev("feature")

		sh.Write("a", "a2").
			Run("-P", "a").
			Status().
			Run("undo", "--yes").
			OutputContains("Undid 'git-instafix -P a'")

		if got := sh.Rev("feature"); got != oldFeature {
			t.Fatalf("feature is at %s, want %s", got, oldFeature)
		}
		sh.Status("M  " + testhelpers.FileName("a"))
	})
}

func TestRebaseCommand(t *testing.T) {
	sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a", "b"))
	sh.Git("branch", "x", "feature~1").
		Git("checkout", "-q", "main").
		Write("m", "m").
		Git("commit", "-q", "-m", "m").
		Git("checkout", "-q", "feature")

	sh.Run("rebase", "main").
		OutputContains("updated branch x: ").
		OutputContains("updated branch feature: ").
		Commits("feature", "b", "a", "m", "base").
		Commits("x", "a", "m", "base")
}

func TestVersion(t *testing.T) {
	sh := NewTestShell(t, testhelpers.BasicSceneSetup)

	sh.Run("--version").
		OutputContains("dev (commit none, built unknown)")
}

func TestConfigCommand(t *testing.T) {
	sh := NewTestShell(t, testhelpers.FeatureBranchSetup("a", "b"))

	sh.Run("config", "show").
		OutputContains("upstream: (search main, master, develop, trunk)").
		OutputContains("max-commits: 15").
		Run("config", "set", "max-commits", "1").
		OutputContains("Set instafix.max-commits to 1").
		Run("config", "get", "max-commits").
		OutputContains("1").
		Run("config", "set", "squash", "yes").
		Run("config", "show").
		OutputContains("max-commits: 1").
		OutputContains("squash: true").
		RunExpectError("config", "set", "max-commits", "none").
		OutputContains("invalid number").
		RunExpectError("config", "get", "editor").
		OutputContains("unknown configuration key: editor")

	sh.Run("config", "unset", "squash").
		Write("a", "a2").
		RunExpectError("-P", "a").
		OutputContains(`has a summary containing "a"`).
		Run("config", "unset", "max-commits").
		Run("-P", "a").
		FileAt("feature~1", "a", "a2")
}

package actions

import (
	"errors"
	"fmt"

	"instafix.dev/instafix/internal/engine"
	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
	"instafix.dev/instafix/internal/tui"
)

// refHashWidth is the number of hash characters shown for a moved ref
const refHashWidth = 15

// printRefUpdates prints one line per ref that was moved and returns how many moved
func printRefUpdates(splog *tui.Splog, updates []engine.RefUpdate) int {
	moved := 0
	for _, u := range updates {
		if u.Old == u.New {
			continue
		}
		splog.Info("%s", formatRefUpdate(u.Branch, u.Ref, u.Old, u.New))
		moved++
	}
	return moved
}

func formatRefUpdate(branch, ref, oldHash, newHash string) string {
	name := "HEAD"
	if branch != "" {
		name = "branch " + tui.ColorBranchName(branch)
	} else if ref != "HEAD" {
		name = ref
	}
	return fmt.Sprintf("updated %s: %s -> %s", name, shortHash(oldHash, refHashWidth), tui.ColorSHA(shortHash(newHash, refHashWidth)))
}

func shortHash(sha string, n int) string {
	if len(sha) > n {
		return sha[:n]
	}
	return sha
}

// PrintFixupConflict explains how to finish a fixup by hand when the staged
// changes could not be folded into target automatically. Other errors print nothing.
func PrintFixupConflict(splog *tui.Splog, target *git.Commit, err error) {
	var paths []string
	var applyErr *instafixerrors.ApplyConflictError
	var replayErr *instafixerrors.ReplayConflictError
	switch {
	case errors.As(err, &applyErr):
		splog.Info("%s", tui.ColorRed(fmt.Sprintf("The staged changes do not apply to %s %s", target.ShortHash(10), target.Summary())))
		paths = applyErr.Paths
	case errors.As(err, &replayErr):
		splog.Info("%s", tui.ColorRed(fmt.Sprintf("Moving the staged changes into %s conflicts with %s %s",
			target.ShortHash(10), shortHash(replayErr.Commit, 10), replayErr.Summary)))
		paths = replayErr.Paths
	default:
		return
	}

	if len(paths) > 0 {
		splog.Info("%s", tui.ColorYellow("Conflicting paths:"))
		for _, p := range paths {
			splog.Info("  %s", tui.ColorRed(p))
		}
	}
	splog.Newline()

	splog.Info("Nothing was changed. To fold the changes in by hand:")
	splog.Info("  %s", tui.ColorCyan(fmt.Sprintf("git commit --fixup=%s", target.Hash)))
	splog.Info("  %s", tui.ColorCyan(fmt.Sprintf("git rebase --interactive --autosquash %s~", target.Hash)))
}

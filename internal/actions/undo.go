package actions

import (
	"errors"
	"fmt"
	"strings"

	"instafix.dev/instafix/internal/engine"
	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/runtime"
	"instafix.dev/instafix/internal/tui"
)

// UndoOptions contains options for the undo command
type UndoOptions struct {
	// Yes skips the confirmation prompt
	Yes bool
}

// UndoAction moves the refs of the most recent operation back
func UndoAction(ctx *runtime.Context, opts UndoOptions) error {
	eng := ctx.Engine
	splog := ctx.Splog

	snapshots, err := eng.Journal().List()
	if err != nil {
		return fmt.Errorf("failed to get snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		splog.Info("No undo history available.")
		return nil
	}
	latest := snapshots[0]

	if !opts.Yes && tui.IsTTY() {
		confirmed, err := tui.PromptConfirm(fmt.Sprintf("Undo %s?", describeSnapshot(latest)), false, false)
		if err != nil {
			return fmt.Errorf("failed to get confirmation: %w", err)
		}
		if !confirmed {
			splog.Info("Undo canceled.")
			return nil
		}
	}

	result, err := eng.Undo(ctx)
	if errors.Is(err, instafixerrors.ErrNoUndoSnapshot) {
		splog.Info("No undo history available.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to undo: %w", err)
	}

	for _, ref := range result.Restored {
		splog.Info("%s", formatRefUpdate(ref.Branch, ref.Ref, ref.New, ref.Old))
	}
	for _, ref := range result.Skipped {
		splog.Warn("%s moved since %s, left it alone", refLabel(ref.Branch, ref.Ref), result.Snapshot.Command)
	}
	splog.Info("Undid %s.", describeSnapshot(result.Snapshot))
	return nil
}

func refLabel(branch, ref string) string {
	if branch != "" {
		return "branch " + branch
	}
	return ref
}

// describeSnapshot renders a snapshot as "'<command> <args>' from <time>"
func describeSnapshot(info engine.SnapshotInfo) string {
	command := strings.TrimSpace(info.Command + " " + strings.Join(info.Args, " "))
	return fmt.Sprintf("'%s' from %s", command, info.Timestamp.Local().Format("2006-01-02 15:04:05"))
}

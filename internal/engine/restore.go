package engine

import (
	"context"
	"fmt"

	instafixerrors "instafix.dev/instafix/internal/errors"
)

// UndoResult describes what Undo changed
type UndoResult struct {
	Snapshot SnapshotInfo
	Restored []SnapshotRef
	// Skipped refs moved again after the snapshot and were left alone
	Skipped []SnapshotRef
}

// Undo moves the refs recorded in the most recent snapshot back to their old
// values. Refs that no longer point at the value the operation gave them are
// skipped. The checked out branch is moved with `git reset --soft` when the
// snapshot keeps the index, and with `git reset --keep` otherwise.
func (e *Engine) Undo(ctx context.Context) (*UndoResult, error) {
	snapshots, err := e.journal.List()
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, instafixerrors.ErrNoUndoSnapshot
	}
	info := snapshots[0]
	snapshot, err := e.journal.Load(info.ID)
	if err != nil {
		return nil, err
	}

	head, err := e.resolver.CurrentHead()
	if err != nil {
		return nil, err
	}

	result := &UndoResult{Snapshot: info}
	reason := fmt.Sprintf("undo %s", snapshot.Command)
	for _, ref := range snapshot.Refs {
		// A detached HEAD is only restored while still detached
		if ref.Ref == "HEAD" && !head.Detached() {
			result.Skipped = append(result.Skipped, ref)
			continue
		}
		current, err := e.repo.RevParse(ctx, ref.Ref)
		if err != nil || current != ref.New {
			result.Skipped = append(result.Skipped, ref)
			continue
		}

		checkedOut := ref.Ref == "HEAD" || (ref.Branch != "" && ref.Branch == head.Branch)
		switch {
		case checkedOut && snapshot.KeepIndex:
			err = e.repo.SoftReset(ctx, ref.Old)
		case checkedOut:
			err = e.repo.KeepReset(ctx, ref.Old)
		default:
			err = e.repo.UpdateRef(ctx, ref.Ref, ref.Old, ref.New, reason)
		}
		if err != nil {
			return result, fmt.Errorf("failed to restore %s: %w", ref.Ref, err)
		}
		result.Restored = append(result.Restored, ref)
	}

	if err := e.journal.Remove(info.ID); err != nil {
		return result, err
	}
	return result, nil
}

package engine

import (
	"context"
	"fmt"

	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
)

// RefRetargeter moves refs that point at rewritten commits to their replacements
type RefRetargeter struct {
	repo *git.Repository
	log  Logger
}

// NewRefRetargeter creates a RefRetargeter
func NewRefRetargeter(repo *git.Repository, log Logger) *RefRetargeter {
	if log == nil {
		log = nopLogger{}
	}
	return &RefRetargeter{repo: repo, log: log}
}

// Plan lists the ref updates Retarget would make, current branch last
func (r *RefRetargeter) Plan(head Head, rewrites *RewriteMap) ([]RefUpdate, error) {
	branches, err := r.repo.LocalBranches()
	if err != nil {
		return nil, err
	}

	var updates []RefUpdate
	for _, branch := range branches {
		if branch.Name == head.Branch {
			continue
		}
		if replacement, ok := rewrites.Get(branch.Hash); ok {
			updates = append(updates, RefUpdate{
				Branch: branch.Name,
				Ref:    branch.RefName(),
				Old:    branch.Hash,
				New:    replacement,
			})
		}
	}

	_, last, ok := rewrites.Last()
	if !ok {
		return updates, nil
	}
	headUpdate := RefUpdate{Branch: head.Branch, Ref: "HEAD", Old: head.Hash, New: last}
	if !head.Detached() {
		headUpdate.Ref = git.Branch{Name: head.Branch}.RefName()
	}
	return append(updates, headUpdate), nil
}

// Retarget moves every local branch whose tip was rewritten to the replacement,
// then moves the current branch (or a detached HEAD) to the last replacement.
// Every update is a compare-and-swap against the value read before the operation.
// All updates are attempted; failures are collected into a RefUpdateError and
// successful ones are not rolled back.
func (r *RefRetargeter) Retarget(ctx context.Context, head Head, rewrites *RewriteMap, reason string) ([]RefUpdate, error) {
	updates, err := r.Plan(head, rewrites)
	if err != nil {
		return nil, err
	}

	var done []RefUpdate
	refErr := &instafixerrors.RefUpdateError{}
	for _, u := range updates {
		if err := r.update(ctx, u, reason); err != nil {
			r.log.Debug("Failed to move %s: %v", u.Ref, err)
			refErr.Failed = append(refErr.Failed, instafixerrors.RefFailure{Ref: u.Ref, Err: err})
			continue
		}
		done = append(done, u)
		refErr.Succeeded = append(refErr.Succeeded, u.Ref)
	}

	if len(refErr.Failed) > 0 {
		return done, refErr
	}
	return done, nil
}

func (r *RefRetargeter) update(ctx context.Context, u RefUpdate, reason string) error {
	if u.Ref == "HEAD" {
		return r.repo.UpdateHead(ctx, u.New, u.Old, reason)
	}
	if err := r.repo.UpdateRef(ctx, u.Ref, u.New, u.Old, reason); err != nil {
		return fmt.Errorf("%s: %w", u.Branch, err)
	}
	return nil
}

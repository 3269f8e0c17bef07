package engine

import (
	"context"
	"errors"
	"fmt"

	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
)

// StashEntry is uncommitted work held aside for the duration of one operation
type StashEntry struct {
	Hash string
	// Base is the commit HEAD pointed at when the entry was saved
	Base     string
	consumed bool
}

// StashManager saves and restores everything in the work tree that is not staged
type StashManager struct {
	repo *git.Repository
	log  Logger
}

// NewStashManager creates a StashManager
func NewStashManager(repo *git.Repository, log Logger) *StashManager {
	if log == nil {
		log = nopLogger{}
	}
	return &StashManager{repo: repo, log: log}
}

// Save stashes unstaged modifications and untracked files, leaving a work tree
// that matches the index. It returns nil when there is nothing to save.
func (s *StashManager) Save(ctx context.Context) (*StashEntry, error) {
	stash, err := s.repo.StashPush(ctx, "git-instafix: uncommitted changes")
	if err != nil {
		return nil, err
	}
	if stash == nil {
		return nil, nil
	}
	s.log.Debug("Saved uncommitted changes as %s", stash.Hash)
	return &StashEntry{Hash: stash.Hash, Base: stash.Base}, nil
}

// Restore puts the saved work back on top of the current HEAD and drops the entry.
// A nil or already restored entry is a no-op. If the saved work conflicts with
// HEAD the work tree is reset, the entry is kept, and a StashRestoreConflictError
// names it.
func (s *StashManager) Restore(ctx context.Context, entry *StashEntry) error {
	if entry == nil || entry.consumed {
		return nil
	}

	if err := s.apply(ctx, entry); err != nil {
		s.log.Debug("Restoring %s failed: %v", entry.Hash, err)
		if cleanErr := s.clean(ctx, entry); cleanErr != nil {
			err = errors.Join(err, cleanErr)
		}
		return instafixerrors.NewStashRestoreConflictError(entry.Hash, err)
	}

	entry.consumed = true
	if err := s.repo.StashDrop(ctx, entry.Hash); err != nil {
		return fmt.Errorf("restored changes but could not drop stash %s: %w", entry.Hash, err)
	}
	s.log.Debug("Restored uncommitted changes from %s", entry.Hash)
	return nil
}

func (s *StashManager) apply(ctx context.Context, entry *StashEntry) error {
	head, err := s.repo.RevParse(ctx, "HEAD")
	if err != nil {
		return err
	}
	if err := s.repo.HardReset(ctx, "HEAD"); err != nil {
		return err
	}

	// HEAD did not move: reproduce the index and work tree exactly
	if head == entry.Base {
		return s.repo.StashApply(ctx, entry.Hash, true)
	}

	// HEAD now contains exactly what was staged: put the work tree back as it was
	headTree, err := s.repo.RevParse(ctx, "HEAD^{tree}")
	if err != nil {
		return err
	}
	indexTree, err := s.repo.RevParse(ctx, entry.Hash+"^2^{tree}")
	if err != nil {
		return err
	}
	if headTree == indexTree {
		if err := s.repo.CheckoutWorkTree(ctx, "HEAD", entry.Hash); err != nil {
			return err
		}
		untracked, err := s.repo.StashUntrackedPaths(ctx, entry.Hash)
		if err != nil {
			return err
		}
		return s.repo.RestoreUntracked(ctx, entry.Hash+"^3", untracked)
	}

	return s.repo.StashApply(ctx, entry.Hash, false)
}

// clean undoes a partial application so the entry can be applied again by hand
func (s *StashManager) clean(ctx context.Context, entry *StashEntry) error {
	if err := s.repo.HardReset(ctx, "HEAD"); err != nil {
		return err
	}
	untracked, err := s.repo.StashUntrackedPaths(ctx, entry.Hash)
	if err != nil {
		return err
	}
	return s.repo.RemoveUntracked(ctx, untracked)
}

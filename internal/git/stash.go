package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// StashCommit is the stash entry created by StashPush
type StashCommit struct {
	Hash string
	// Base is the commit HEAD pointed at when the stash was created
	Base string
}

// StashPush stashes the work tree and untracked files while keeping the index in place.
// It returns nil when there was nothing to stash.
func (r *Repository) StashPush(ctx context.Context, message string) (*StashCommit, error) {
	before := r.stashTop(ctx)

	args := []string{"stash", "push", "--keep-index", "--include-untracked"}
	if message != "" {
		args = append(args, "-m", message)
	}
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return nil, fmt.Errorf("stash push failed: %w", err)
	}

	after := r.stashTop(ctx)
	if after == "" || after == before {
		return nil, nil
	}

	base, err := r.runner.Run(ctx, "rev-parse", after+"^1")
	if err != nil {
		return nil, fmt.Errorf("failed to read stash base: %w", err)
	}
	return &StashCommit{Hash: after, Base: base}, nil
}

func (r *Repository) stashTop(ctx context.Context) string {
	sha, err := r.runner.Run(ctx, "rev-parse", "--verify", "--quiet", "refs/stash")
	if err != nil {
		return ""
	}
	return sha
}

// StashApply applies a stash commit onto the work tree. With index set, the staged
// state recorded in the stash is restored as well.
func (r *Repository) StashApply(ctx context.Context, sha string, index bool) error {
	args := []string{"stash", "apply"}
	if index {
		args = append(args, "--index")
	}
	args = append(args, sha)
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("stash apply failed: %w", err)
	}
	return nil
}

// StashDrop drops the stash entry whose commit is sha. It is a no-op if no entry matches.
func (r *Repository) StashDrop(ctx context.Context, sha string) error {
	lines, err := r.runner.RunLines(ctx, "stash", "list", "--format=%H")
	if err != nil {
		return fmt.Errorf("failed to list stash entries: %w", err)
	}
	for i, line := range lines {
		if strings.TrimSpace(line) != sha {
			continue
		}
		if _, err := r.runner.Run(ctx, "stash", "drop", "stash@{"+strconv.Itoa(i)+"}"); err != nil {
			return fmt.Errorf("stash drop failed: %w", err)
		}
		return nil
	}
	return nil
}

// StashUntrackedPaths lists the untracked files recorded in a stash commit
func (r *Repository) StashUntrackedPaths(ctx context.Context, sha string) ([]string, error) {
	if _, err := r.runner.Run(ctx, "rev-parse", "--verify", "--quiet", sha+"^3"); err != nil {
		return nil, nil
	}
	return r.runner.RunLines(ctx, "ls-tree", "-r", "--name-only", sha+"^3")
}

// RemoveUntracked deletes the given paths from the work tree unless git tracks them
func (r *Repository) RemoveUntracked(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if _, err := r.runner.Run(ctx, "ls-files", "--error-unmatch", "--", path); err == nil {
			continue
		}
		if err := os.Remove(filepath.Join(r.path, path)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

// CheckoutWorkTree switches the index and work tree from the tree of from to the
// tree of to, then resets the index back to HEAD. The result is a work tree that
// matches to while HEAD and the index are unchanged.
func (r *Repository) CheckoutWorkTree(ctx context.Context, from, to string) error {
	if _, err := r.runner.Run(ctx, "read-tree", "-m", "-u", from, to); err != nil {
		return fmt.Errorf("failed to check out %s: %w", to, err)
	}
	if _, err := r.runner.Run(ctx, "reset", "-q"); err != nil {
		return fmt.Errorf("failed to reset index: %w", err)
	}
	return nil
}

// RestoreUntracked writes paths from treeish into the work tree without staging them
func (r *Repository) RestoreUntracked(ctx context.Context, treeish string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"checkout", treeish, "--"}, paths...)
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to restore untracked files: %w", err)
	}
	args = append([]string{"reset", "-q", "--"}, paths...)
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to unstage untracked files: %w", err)
	}
	return nil
}

package git

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// MergeBase returns the merge base between two commits
func (r *Repository) MergeBase(a, b plumbing.Hash) (string, error) {
	commit1, err := r.CommitObject(a)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", a, err)
	}

	commit2, err := r.CommitObject(b)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", b, err)
	}

	mergeBases, err := commit1.MergeBase(commit2)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base: %w", err)
	}

	if len(mergeBases) == 0 {
		return "", fmt.Errorf("no merge base found between %s and %s", a, b)
	}

	return mergeBases[0].Hash.String(), nil
}

// IsAncestor checks if the first commit is an ancestor of the second
func (r *Repository) IsAncestor(ancestor, descendant plumbing.Hash) (bool, error) {
	// If they're the same, ancestor is an ancestor
	if ancestor == descendant {
		return true, nil
	}

	ancestorCommit, err := r.CommitObject(ancestor)
	if err != nil {
		return false, fmt.Errorf("failed to get ancestor commit: %w", err)
	}

	descendantCommit, err := r.CommitObject(descendant)
	if err != nil {
		return false, fmt.Errorf("failed to get descendant commit: %w", err)
	}

	return ancestorCommit.IsAncestor(descendantCommit)
}

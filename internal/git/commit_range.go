package git

import (
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5/plumbing"

	"instafix.dev/instafix/internal/errors"
)

// FirstParentChain returns the commits reachable from head by following first
// parents until base (exclusive), oldest first. A merge commit along the way
// makes the chain non-linear and is reported as ErrNonLinearHistory.
func (r *Repository) FirstParentChain(head, base plumbing.Hash) ([]*Commit, error) {
	var chain []*Commit
	hash := head
	for hash != base {
		commit, err := r.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
		}
		if commit.NumParents() > 1 {
			return nil, fmt.Errorf("%w: %s", errors.ErrNonLinearHistory, hash)
		}
		chain = append(chain, newCommit(commit))
		if commit.NumParents() == 0 {
			if base.IsZero() {
				break
			}
			return nil, fmt.Errorf("%s is not an ancestor of %s", base, head)
		}
		hash = commit.ParentHashes[0]
	}

	slices.Reverse(chain)
	return chain, nil
}

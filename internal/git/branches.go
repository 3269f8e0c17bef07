package git

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"instafix.dev/instafix/internal/errors"
)

// Branch is a local branch and the commit it points at
type Branch struct {
	Name string
	Hash string
}

// RefName returns the full ref name of the branch
func (b Branch) RefName() string {
	return plumbing.NewBranchReferenceName(b.Name).String()
}

// CurrentBranch returns the name of the checked out branch.
// It returns ErrNotOnBranch when HEAD is detached.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", errors.ErrNotOnBranch
	}
	return head.Target().Short(), nil
}

// HeadHash returns the commit HEAD points at
func (r *Repository) HeadHash() (plumbing.Hash, error) {
	head, err := r.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Hash(), nil
}

// LocalBranches returns all local branches sorted by name
func (r *Repository) LocalBranches() ([]Branch, error) {
	iter, err := r.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer iter.Close()

	var branches []Branch
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		branches = append(branches, Branch{Name: ref.Name().Short(), Hash: ref.Hash().String()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate branches: %w", err)
	}

	sort.Slice(branches, func(i, j int) bool {
		return branches[i].Name < branches[j].Name
	})
	return branches, nil
}

// BranchExists returns true if a local branch with the given name exists
func (r *Repository) BranchExists(name string) bool {
	_, err := r.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

// RemoteBranchExists returns true if remote/name exists
func (r *Repository) RemoteBranchExists(remote, name string) bool {
	_, err := r.Reference(plumbing.NewRemoteReferenceName(remote, name), true)
	return err == nil
}

// TrackingUpstream returns the configured upstream of the current branch (e.g. origin/main),
// or "" if none is configured.
func (r *Repository) TrackingUpstream(ctx context.Context) string {
	output, err := r.runner.Run(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(output)
}

// UpdateRef moves ref from oldSHA to newSHA, recording reason in the reflog.
// The update fails if ref no longer points at oldSHA.
func (r *Repository) UpdateRef(ctx context.Context, ref, newSHA, oldSHA, reason string) error {
	args := []string{"update-ref", "-m", reason, ref, newSHA}
	if oldSHA != "" {
		args = append(args, oldSHA)
	}
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to update %s: %w", ref, err)
	}
	return nil
}

// UpdateHead moves a detached HEAD from oldSHA to newSHA
func (r *Repository) UpdateHead(ctx context.Context, newSHA, oldSHA, reason string) error {
	args := []string{"update-ref", "--no-deref", "-m", reason, "HEAD", newSHA}
	if oldSHA != "" {
		args = append(args, oldSHA)
	}
	if _, err := r.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to update HEAD: %w", err)
	}
	return nil
}

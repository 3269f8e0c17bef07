package engine

import (
	"context"
	"errors"
	"fmt"

	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
)

// DefaultUpstreamBranches are tried in order when no upstream is configured
var DefaultUpstreamBranches = []string{"main", "master", "develop", "trunk"}

// RangeResolver computes the chain of commits between HEAD and its upstream
type RangeResolver struct {
	repo *git.Repository
}

// NewRangeResolver creates a RangeResolver
func NewRangeResolver(repo *git.Repository) *RangeResolver {
	return &RangeResolver{repo: repo}
}

// CurrentHead reads the branch and commit HEAD points at
func (r *RangeResolver) CurrentHead() (Head, error) {
	hash, err := r.repo.HeadHash()
	if err != nil {
		return Head{}, err
	}
	branch, err := r.repo.CurrentBranch()
	if err != nil && !errors.Is(err, instafixerrors.ErrNotOnBranch) {
		return Head{}, err
	}
	return Head{Branch: branch, Hash: hash.String()}, nil
}

// Resolve returns the commits from the merge base of HEAD and the upstream
// (exclusive) up to HEAD (inclusive), oldest first.
func (r *RangeResolver) Resolve(ctx context.Context, spec UpstreamSpec) (*Range, error) {
	head, err := r.CurrentHead()
	if err != nil {
		return nil, err
	}

	upstream, err := r.upstream(ctx, head, spec)
	if err != nil {
		return nil, err
	}

	upstreamHash, err := r.repo.ResolveRefHash(upstream)
	if err != nil {
		return nil, fmt.Errorf("upstream %s: %w", upstream, err)
	}
	headHash, err := r.repo.ResolveRefHash(head.Hash)
	if err != nil {
		return nil, err
	}

	mergeBase, err := r.repo.MergeBase(headHash, upstreamHash)
	if err != nil {
		return nil, err
	}
	if mergeBase == head.Hash {
		return nil, fmt.Errorf("%w: HEAD is at the merge base with %s", instafixerrors.ErrEmptyChain, upstream)
	}

	baseHash, err := r.repo.ResolveRefHash(mergeBase)
	if err != nil {
		return nil, err
	}
	chain, err := r.repo.FirstParentChain(headHash, baseHash)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, instafixerrors.ErrEmptyChain
	}

	return &Range{
		Head:      head,
		Upstream:  upstream,
		MergeBase: mergeBase,
		Chain:     chain,
	}, nil
}

// upstream picks the upstream specifier: the explicit one when given, otherwise
// the first default trunk branch that exists, otherwise the tracking branch.
func (r *RangeResolver) upstream(ctx context.Context, head Head, spec UpstreamSpec) (string, error) {
	if spec.Name != "" {
		if !head.Detached() && r.namesBranch(spec.Name, head.Branch) {
			return "", instafixerrors.NewUpstreamEqualsCurrentError(spec.Name, spec.Source)
		}
		return spec.Name, nil
	}

	for _, name := range DefaultUpstreamBranches {
		if r.repo.BranchExists(name) && name != head.Branch {
			return name, nil
		}
		if r.repo.RemoteBranchExists("origin", name) {
			return "origin/" + name, nil
		}
	}

	if tracking := r.repo.TrackingUpstream(ctx); tracking != "" {
		return tracking, nil
	}

	return "", instafixerrors.ErrNoUpstream
}

// namesBranch reports whether spec refers to the local branch named branch
func (r *RangeResolver) namesBranch(spec, branch string) bool {
	return spec == branch || spec == "refs/heads/"+branch || spec == "heads/"+branch
}

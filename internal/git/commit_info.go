package git

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is an immutable snapshot of a commit object
type Commit struct {
	Hash        string
	Parents     []string
	Tree        string
	Message     string
	AuthorName  string
	AuthorEmail string
	AuthorWhen  time.Time
}

// Summary returns the first line of the commit message
func (c *Commit) Summary() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return strings.TrimSpace(subject)
}

// ShortHash returns the first n characters of the commit hash
func (c *Commit) ShortHash(n int) string {
	if len(c.Hash) <= n {
		return c.Hash
	}
	return c.Hash[:n]
}

// Parent returns the first parent, or "" for a root commit
func (c *Commit) Parent() string {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// IsMerge returns true if the commit has more than one parent
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

func newCommit(c *object.Commit) *Commit {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return &Commit{
		Hash:        c.Hash.String(),
		Parents:     parents,
		Tree:        c.TreeHash.String(),
		Message:     c.Message,
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
		AuthorWhen:  c.Author.When,
	}
}

// ResolveRefHash resolves a ref specifier to a commit hash. The specifier may be
// a full ref name, a local branch, a remote branch, a tag or any revision expression.
func (r *Repository) ResolveRefHash(ref string) (plumbing.Hash, error) {
	// 1. Try as a full reference name
	if reference, err := r.Reference(plumbing.ReferenceName(ref), true); err == nil {
		return r.peel(reference.Hash())
	}

	// 2. Try as a local branch
	if reference, err := r.Reference(plumbing.NewBranchReferenceName(ref), true); err == nil {
		return reference.Hash(), nil
	}

	// 3. Try as a remote branch
	if reference, err := r.Reference(plumbing.ReferenceName("refs/remotes/"+ref), true); err == nil {
		return reference.Hash(), nil
	}
	if reference, err := r.Reference(plumbing.NewRemoteReferenceName("origin", ref), true); err == nil {
		return reference.Hash(), nil
	}

	// 4. Try as a tag
	if reference, err := r.Reference(plumbing.NewTagReferenceName(ref), true); err == nil {
		return r.peel(reference.Hash())
	}

	// 5. Try ResolveRevision (handles SHAs, short SHAs, and expressions like HEAD~1)
	hash, err := r.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return r.peel(*hash)
	}

	return plumbing.ZeroHash, fmt.Errorf("failed to resolve ref %s: reference not found", ref)
}

// peel follows annotated tags down to the commit they point at
func (r *Repository) peel(hash plumbing.Hash) (plumbing.Hash, error) {
	for {
		tag, err := r.TagObject(hash)
		if err != nil {
			return hash, nil
		}
		if tag.TargetType != plumbing.CommitObject && tag.TargetType != plumbing.TagObject {
			return plumbing.ZeroHash, fmt.Errorf("tag %s does not point at a commit", tag.Name)
		}
		hash = tag.Target
	}
}

// ResolveCommit resolves a ref specifier and reads the commit it points at
func (r *Repository) ResolveCommit(ref string) (*Commit, error) {
	hash, err := r.ResolveRefHash(ref)
	if err != nil {
		return nil, err
	}
	return r.CommitByHash(hash.String())
}

// CommitByHash reads a commit object by its full hash
func (r *Repository) CommitByHash(sha string) (*Commit, error) {
	commit, err := r.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", sha, err)
	}
	return newCommit(commit), nil
}

// RevParse resolves a revision expression with git rev-parse
func (r *Repository) RevParse(ctx context.Context, rev string) (string, error) {
	sha, err := r.runner.Run(ctx, "rev-parse", "--verify", "--quiet", rev)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	return sha, nil
}

package engine

import (
	"context"
	"fmt"

	"instafix.dev/instafix/internal/git"
)

// PatchAmender builds a replacement for a historical commit with a patch folded in
type PatchAmender struct {
	repo *git.Repository
	log  Logger
}

// NewPatchAmender creates a PatchAmender
func NewPatchAmender(repo *git.Repository, log Logger) *PatchAmender {
	if log == nil {
		log = nopLogger{}
	}
	return &PatchAmender{repo: repo, log: log}
}

// Amend creates a new commit whose tree is the target's tree with patch applied.
// The parent and author are kept; message replaces the original message when it
// is not empty. The replacement is recorded in rewrites. No ref is touched.
func (a *PatchAmender) Amend(ctx context.Context, target *git.Commit, patch, message string, rewrites *RewriteMap) (string, error) {
	tree, err := a.repo.ApplyPatchToTree(ctx, target.Hash, patch)
	if err != nil {
		return "", err
	}

	if message == "" {
		message = target.Message
	}

	amended, err := a.repo.CommitTree(ctx, git.CommitTreeOptions{
		Tree:        tree,
		Parents:     target.Parents,
		Message:     message,
		AuthorName:  target.AuthorName,
		AuthorEmail: target.AuthorEmail,
		AuthorWhen:  target.AuthorWhen,
	})
	if err != nil {
		return "", fmt.Errorf("failed to amend %s: %w", target.ShortHash(10), err)
	}

	if err := rewrites.Record(target.Hash, amended); err != nil {
		return "", err
	}
	a.log.Debug("Amended %s as %s", target.Hash, amended)
	return amended, nil
}

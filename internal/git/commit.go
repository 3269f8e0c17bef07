package git

import (
	"context"
	"fmt"
	"time"
)

// CommitTreeOptions describes a commit object to create
type CommitTreeOptions struct {
	Tree        string
	Parents     []string
	Message     string
	AuthorName  string
	AuthorEmail string
	AuthorWhen  time.Time
}

// CommitTree writes a commit object and returns its hash. No ref is updated.
// The author identity is taken from opts; the committer is the current user.
func (r *Repository) CommitTree(ctx context.Context, opts CommitTreeOptions) (string, error) {
	args := []string{"commit-tree", opts.Tree}
	for _, p := range opts.Parents {
		args = append(args, "-p", p)
	}
	args = append(args, "-F", "-")

	var env []string
	if opts.AuthorName != "" {
		env = append(env, "GIT_AUTHOR_NAME="+opts.AuthorName)
	}
	if opts.AuthorEmail != "" {
		env = append(env, "GIT_AUTHOR_EMAIL="+opts.AuthorEmail)
	}
	if !opts.AuthorWhen.IsZero() {
		env = append(env, "GIT_AUTHOR_DATE="+formatGitDate(opts.AuthorWhen))
	}

	message := opts.Message
	if message == "" {
		message = "\n"
	}
	sha, err := r.runner.RunWithEnv(ctx, env, message, args...)
	if err != nil {
		return "", fmt.Errorf("failed to create commit: %w", err)
	}
	return sha, nil
}

// formatGitDate renders t in git's internal "@<unix> <tz>" format
func formatGitDate(t time.Time) string {
	return fmt.Sprintf("@%d %s", t.Unix(), t.Format("-0700"))
}

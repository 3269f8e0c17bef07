package git

import (
	"context"
	"fmt"
	"strings"
)

// HasStagedChanges checks if there are staged changes
func (r *Repository) HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := r.runner.Run(ctx, "diff", "--cached", "--shortstat")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUnstagedChanges checks if there are unstaged changes to tracked files
func (r *Repository) HasUnstagedChanges(ctx context.Context) (bool, error) {
	output, err := r.runner.Run(ctx, "diff", "--name-only")
	if err != nil {
		return false, fmt.Errorf("failed to check unstaged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUntrackedFiles checks if there are untracked files
func (r *Repository) HasUntrackedFiles(ctx context.Context) (bool, error) {
	output, err := r.runner.Run(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return false, fmt.Errorf("failed to check untracked files: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// StageTracked stages updates to tracked files only
func (r *Repository) StageTracked(ctx context.Context) error {
	if _, err := r.runner.Run(ctx, "add", "-u"); err != nil {
		return fmt.Errorf("failed to stage tracked changes: %w", err)
	}
	return nil
}

// StagedPatch returns the staged changes as a binary-safe patch against HEAD
func (r *Repository) StagedPatch(ctx context.Context) (string, error) {
	output, err := r.runner.RunRaw(ctx, "diff", "--cached", "--binary", "--full-index", "--no-renames",
		"--no-color", "--no-ext-diff", "--src-prefix=a/", "--dst-prefix=b/", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get staged diff: %w", err)
	}
	return output, nil
}

// StagedDiff returns the staged changes for display, colored when color is true
func (r *Repository) StagedDiff(ctx context.Context, color bool) (string, error) {
	args := []string{"diff", "--cached", "--no-ext-diff"}
	if color {
		args = append(args, "--color=always")
	} else {
		args = append(args, "--no-color")
	}
	output, err := r.runner.RunRaw(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to get staged diff: %w", err)
	}
	return output, nil
}

package git

import (
	"context"
	"fmt"
)

// HardReset performs a hard reset to the given SHA
func (r *Repository) HardReset(ctx context.Context, sha string) error {
	if _, err := r.runner.Run(ctx, "reset", "-q", "--hard", sha); err != nil {
		return fmt.Errorf("hard reset failed: %w", err)
	}
	return nil
}

// KeepReset moves the current branch to sha, keeping local changes that do not conflict
func (r *Repository) KeepReset(ctx context.Context, sha string) error {
	if _, err := r.runner.Run(ctx, "reset", "-q", "--keep", sha); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	return nil
}

// SoftReset moves the current branch to sha, leaving the index and work tree alone
func (r *Repository) SoftReset(ctx context.Context, sha string) error {
	if _, err := r.runner.Run(ctx, "reset", "-q", "--soft", sha); err != nil {
		return fmt.Errorf("soft reset failed: %w", err)
	}
	return nil
}

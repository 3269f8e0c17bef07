package git

import (
	"context"
	"os"
	"path/filepath"
)

// operationMarkers are the files and directories git leaves behind while a
// multi-step operation waits for the user
var operationMarkers = []string{
	"rebase-merge",
	"rebase-apply",
	"MERGE_HEAD",
	"CHERRY_PICK_HEAD",
	"REVERT_HEAD",
}

// IsRebaseInProgress checks if a rebase, merge, cherry-pick or revert is currently in progress
func (r *Repository) IsRebaseInProgress(ctx context.Context) bool {
	gitDir, err := r.GitDir(ctx)
	if err != nil {
		return false
	}

	for _, marker := range operationMarkers {
		if _, err := os.Stat(filepath.Join(gitDir, marker)); err == nil {
			return true
		}
	}
	return false
}

package git

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Repository wraps a go-git repository together with a runner bound to its work tree.
// Reads go through go-git; anything that writes objects or refs goes through the git CLI.
type Repository struct {
	*git.Repository
	path   string
	runner *CommandRunner
}

// OpenRepository opens the git repository containing path. Parent directories
// are searched for a .git directory, so path may be any directory inside the work tree.
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}
	root := worktree.Filesystem.Root()

	return &Repository{
		Repository: repo,
		path:       root,
		runner:     NewCommandRunner(root),
	}, nil
}

// Root returns the root directory of the work tree
func (r *Repository) Root() string {
	return r.path
}

// GitDir returns the absolute path of the repository's git directory
func (r *Repository) GitDir(ctx context.Context) (string, error) {
	dir, err := r.runner.Run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to locate git directory: %w", err)
	}
	return dir, nil
}


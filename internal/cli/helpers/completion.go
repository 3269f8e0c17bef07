// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"os"

	"github.com/spf13/cobra"

	"instafix.dev/instafix/internal/git"
)

// CompleteBranches is a helper for cobra.ValidArgsFunction and RegisterFlagCompletionFunc
// that returns all local branch names in the repository.
func CompleteBranches(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	repo, err := git.OpenRepository(cwd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches, err := repo.LocalBranches()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

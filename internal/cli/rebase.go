package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"instafix.dev/instafix/internal/actions"
	"instafix.dev/instafix/internal/cli/helpers"
	"instafix.dev/instafix/internal/runtime"
)

const rebaseLong = `Replay the commits between the merge base of HEAD and <onto> on top of <onto>.

Unlike 'git rebase', every local branch that pointed at one of the replayed
commits is moved to its replacement, so a stack of branches stays stacked.
Uncommitted changes are stashed for the duration and restored afterwards.`

// newRebaseCmd creates the rebase subcommand
func newRebaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rebase <onto>",
		Short:             "Rebase the current branch, moving every branch that points into it",
		Long:              rebaseLong,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebase(cmd, cmd.Root().Name(), args[0])
		},
	}
}

// NewRebaseWithIntermediatesCmd creates the standalone git-rebase-with-intermediates command
func NewRebaseWithIntermediatesCmd(invokedAs, version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:               invokedAs + " <onto>",
		Short:             "Rebase the current branch, moving every branch that points into it",
		Long:              rebaseLong,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebase(cmd, invokedAs, args[0])
		},
	}
}

func runRebase(cmd *cobra.Command, command, onto string) error {
	return helpers.Run(cmd, func(ctx *runtime.Context) error {
		return actions.RebaseAction(ctx, actions.RebaseOptions{
			Onto:    onto,
			Command: command,
			Args:    os.Args[1:],
		})
	})
}

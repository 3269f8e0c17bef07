package cli

import (
	"github.com/spf13/cobra"

	"instafix.dev/instafix/internal/actions"
	"instafix.dev/instafix/internal/cli/helpers"
	"instafix.dev/instafix/internal/runtime"
)

// newUndoCmd creates the undo command
func newUndoCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Move branches back to where they were before the last operation",
		Long: `Move branches back to where they were before the last git-instafix operation.

Each branch that still points where the operation left it is moved back.
Branches that have moved since are reported and left alone. After a fixup the
folded changes come back staged.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				return actions.UndoAction(ctx, actions.UndoOptions{Yes: force})
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}

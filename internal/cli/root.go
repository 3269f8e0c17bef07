package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"instafix.dev/instafix/internal/actions"
	"instafix.dev/instafix/internal/cli/helpers"
	"instafix.dev/instafix/internal/config"
	"instafix.dev/instafix/internal/engine"
	"instafix.dev/instafix/internal/runtime"
)

// NewRootCmd creates the git-instafix command. invokedAs is the name the
// binary was started under; a name ending in "squash" turns on message editing.
func NewRootCmd(invokedAs, version, commit, date string) *cobra.Command {
	var (
		upstream       string
		maxCommits     int
		pattern        string
		squash         bool
		requireNewline bool
	)

	rootCmd := &cobra.Command{
		Use:   invokedAs,
		Short: "Fold staged changes into an older commit on the current branch",
		Long: `Fold staged changes into an older commit on the current branch.

Pick one of the commits between HEAD and its upstream. The staged changes are
amended into it, every later commit is replayed on top, and each local branch
that pointed at one of the rewritten commits is moved along. Unstaged and
untracked changes are left as they were.

The upstream is taken from --upstream, GIT_INSTAFIX_UPSTREAM or
'git config instafix.default-upstream-branch', and otherwise found by looking
for main, master, develop or trunk.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				var flags config.Flags
				if cmd.Flags().Changed("upstream") {
					flags.Upstream = &upstream
				}
				if cmd.Flags().Changed("max-commits") {
					flags.MaxCommits = &maxCommits
				}
				if cmd.Flags().Changed("squash") {
					flags.Squash = &squash
				}
				if cmd.Flags().Changed("require-newline") {
					flags.RequireNewline = &requireNewline
				}

				settings, err := config.Resolve(ctx, ctx.Repo, flags, invokedAs)
				if err != nil {
					return err
				}

				return actions.FixupAction(ctx, actions.FixupOptions{
					Upstream: engine.UpstreamSpec{
						Name:   settings.Upstream,
						Source: settings.UpstreamSource,
					},
					MaxCommits:     settings.MaxCommits,
					Pattern:        pattern,
					Squash:         settings.Squash,
					RequireNewline: settings.RequireNewline,
					Command:        invokedAs,
					Args:           os.Args[1:],
				})
			})
		},
	}

	rootCmd.Flags().StringVarP(&upstream, "upstream", "u", "", "Branch or ref to find the commits to choose from (default: main, master, develop or trunk)")
	rootCmd.Flags().IntVarP(&maxCommits, "max-commits", "m", config.DefaultMaxCommits, "Maximum number of commits to offer")
	rootCmd.Flags().StringVarP(&pattern, "commit-message-pattern", "P", "", "Amend the newest commit whose summary contains this text, without prompting")
	rootCmd.Flags().BoolVarP(&squash, "squash", "s", false, "Edit the message of the amended commit")
	rootCmd.Flags().BoolVar(&requireNewline, "require-newline", false, "Require Enter after answering y/n prompts")

	_ = rootCmd.RegisterFlagCompletionFunc("upstream", helpers.CompleteBranches)

	rootCmd.AddCommand(newRebaseCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newConfigCmd(invokedAs))

	return rootCmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"instafix.dev/instafix/internal/cli/helpers"
	"instafix.dev/instafix/internal/config"
	"instafix.dev/instafix/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd(invokedAs string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set repository configuration",
		Long: `Get and set the instafix.* keys of the repository's git config.

Keys: upstream, max-commits, require-newline, squash.

Examples:
  git-instafix config set upstream origin/develop
  git-instafix config get max-commits
  git-instafix config unset squash
  git-instafix config show`,
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigUnsetCmd())
	cmd.AddCommand(newConfigShowCmd(invokedAs))

	return cmd
}

func completeSettingNames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.SettingNames(), cobra.ShellCompDirectiveNoFileComp
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Print a configuration value",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSettingNames,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := config.KeyForSetting(args[0])
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				value, ok, err := ctx.Repo.ConfigGet(ctx, key)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%s is not set", key)
				}
				ctx.Splog.Info("%s", value)
				return nil
			})
		},
	}
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Set a configuration value",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeSettingNames,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := config.KeyForSetting(args[0])
			if err != nil {
				return err
			}
			value, err := config.NormalizeSetting(args[0], args[1])
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Repo.ConfigSet(ctx, key, value); err != nil {
					return err
				}
				ctx.Splog.Info("Set %s to %s", key, value)
				return nil
			})
		},
	}
}

// newConfigUnsetCmd creates the config unset command
func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "unset <key>",
		Short:             "Remove a configuration value",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSettingNames,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := config.KeyForSetting(args[0])
			if err != nil {
				return err
			}
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				if err := ctx.Repo.ConfigUnset(ctx, key); err != nil {
					return err
				}
				ctx.Splog.Info("Unset %s", key)
				return nil
			})
		},
	}
}

// newConfigShowCmd creates the config show command
func newConfigShowCmd(invokedAs string) *cobra.Command {
	return &cobra.Command{
		Use:          "show",
		Short:        "Show the settings a fixup would use, after environment and git config",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(ctx *runtime.Context) error {
				settings, err := config.Resolve(ctx, ctx.Repo, config.Flags{}, invokedAs)
				if err != nil {
					return err
				}
				upstream := "(search main, master, develop, trunk)"
				if settings.Upstream != "" {
					upstream = fmt.Sprintf("%s (from %s)", settings.Upstream, settings.UpstreamSource)
				}
				ctx.Splog.Info("upstream: %s", upstream)
				ctx.Splog.Info("max-commits: %d", settings.MaxCommits)
				ctx.Splog.Info("require-newline: %t", settings.RequireNewline)
				ctx.Splog.Info("squash: %t", settings.Squash)
				return nil
			})
		},
	}
}

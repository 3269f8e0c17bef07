package helpers

import (
	"github.com/spf13/cobra"

	"instafix.dev/instafix/internal/runtime"
)

// Run is a helper that provides a runtime context to a command's execution function
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		_ = ctx.Splog.Close()
	}()
	ctx.Splog.Debug("running %s", cmd.CommandPath())
	return fn(ctx)
}

package actions

import (
	"instafix.dev/instafix/internal/engine"
	"instafix.dev/instafix/internal/runtime"
	"instafix.dev/instafix/internal/tui"
)

// RebaseOptions contains options for the rebase command
type RebaseOptions struct {
	Onto    string
	Command string
	Args    []string
}

// RebaseAction replays the current branch onto opts.Onto and moves every
// branch that pointed into it along
func RebaseAction(ctx *runtime.Context, opts RebaseOptions) error {
	splog := ctx.Splog

	result, err := ctx.Engine.RebaseWithIntermediates(ctx, engine.RebaseOptions{
		Operation: engine.Operation{
			ID:      ctx.OperationID,
			Command: opts.Command,
			Args:    opts.Args,
		},
		Onto: opts.Onto,
	})
	moved := 0
	if result != nil {
		moved = printRefUpdates(splog, result.Updated)
	}
	if err != nil {
		return err
	}

	if moved == 0 {
		splog.Info("Already up to date with %s.", tui.ColorBranchName(opts.Onto))
	}
	return nil
}

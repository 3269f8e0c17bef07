package actions

import (
	"context"
	"errors"

	"instafix.dev/instafix/internal/engine"
	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
	"instafix.dev/instafix/internal/runtime"
	"instafix.dev/instafix/internal/tui"
)

// FixupOptions contains options for the fixup command
type FixupOptions struct {
	Upstream       engine.UpstreamSpec
	MaxCommits     int
	Pattern        string // Selects the newest commit whose summary contains it, without prompting
	Squash         bool
	RequireNewline bool
	// Command and Args are recorded in the undo journal
	Command string
	Args    []string
}

// FixupAction moves the staged changes into a commit selected by the user
func FixupAction(ctx *runtime.Context, opts FixupOptions) error {
	splog := ctx.Splog

	if err := ensureStaged(ctx, opts.RequireNewline); err != nil {
		return err
	}
	showStagedChanges(ctx)

	var selector engine.Selector = tui.CommitSelector{}
	if opts.Pattern != "" {
		selector = PatternSelector{Pattern: opts.Pattern}
	}

	announcer := &announcingSelector{inner: selector, splog: splog}
	fixupOpts := engine.FixupOptions{
		Operation: engine.Operation{
			ID:      ctx.OperationID,
			Command: opts.Command,
			Args:    opts.Args,
		},
		Upstream:   opts.Upstream,
		MaxCommits: opts.MaxCommits,
		Selector:   announcer,
	}
	if opts.Squash {
		fixupOpts.Editor = tui.NewMessageEditor(ctx.Repo)
	}

	result, err := ctx.Engine.Fixup(ctx, fixupOpts)
	if result != nil {
		printRefUpdates(splog, result.Updated)
	}
	if err != nil {
		if announcer.selected != nil {
			PrintFixupConflict(splog, announcer.selected, err)
		}
		return err
	}

	splog.Debug("amended %s as %s (snapshot %s)", result.Target.Hash, result.Amended, result.SnapshotID)
	splog.Tip("Run %s to put the branches back.", tui.ColorCyan("git instafix undo"))
	return nil
}

// ensureStaged offers to stage every tracked modification when the index is clean
func ensureStaged(ctx *runtime.Context, requireNewline bool) error {
	staged, err := ctx.Repo.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if staged {
		return nil
	}

	unstaged, err := ctx.Repo.HasUnstagedChanges(ctx)
	if err != nil {
		return err
	}
	if !unstaged || !tui.IsTTY() {
		return instafixerrors.ErrNoStagedChanges
	}

	stageAll, err := tui.PromptConfirm("Nothing staged, stage and commit everything?", false, requireNewline)
	if err != nil {
		if errors.Is(err, instafixerrors.ErrCanceled) {
			return instafixerrors.ErrNoStagedChanges
		}
		return err
	}
	if !stageAll {
		return instafixerrors.ErrNoStagedChanges
	}
	return ctx.Repo.StageTracked(ctx)
}

// showStagedChanges prints the staged diff when it fits on screen and a
// diffstat otherwise
func showStagedChanges(ctx *runtime.Context) {
	splog := ctx.Splog

	patch, err := ctx.Repo.StagedPatch(ctx)
	if err != nil {
		splog.Debug("could not read staged changes: %v", err)
		return
	}
	stats, err := git.DiffStats(patch)
	if err != nil {
		splog.Debug("could not parse staged changes: %v", err)
		return
	}

	splog.Info("Staged changes:")
	if tui.FitsTerminal(stats, tui.TerminalHeight()) {
		display, err := ctx.Repo.StagedDiff(ctx, false)
		if err != nil {
			splog.Debug("could not read staged diff: %v", err)
			return
		}
		splog.Page(tui.ColorizeDiff(display))
	} else {
		splog.Page(tui.RenderDiffStat(stats))
	}
	splog.Newline()
}

// announcingSelector prints the commit the wrapped selector picked
type announcingSelector struct {
	inner    engine.Selector
	splog    *tui.Splog
	selected *git.Commit
}

func (s *announcingSelector) SelectTarget(ctx context.Context, candidates []engine.Candidate) (*git.Commit, error) {
	target, err := s.inner.SelectTarget(ctx, candidates)
	if err != nil {
		return nil, err
	}
	s.selected = target
	for _, c := range candidates {
		if c.Commit.Hash == target.Hash {
			s.splog.Info("Selected %s", tui.FormatCandidate(c))
			return target, nil
		}
	}
	s.splog.Info("Selected %s %s", tui.ColorSHA(target.ShortHash(10)), target.Summary())
	return target, nil
}

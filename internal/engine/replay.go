package engine

import (
	"context"
	"fmt"

	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
)

// ReplayState is the progress of one commit through a replay
type ReplayState int

const (
	// ReplayPending means the commit has not been looked at yet
	ReplayPending ReplayState = iota
	// ReplayReplaying means the commit is being recreated
	ReplayReplaying
	// ReplayReplayed means the commit has a replacement
	ReplayReplayed
	// ReplayConflicted means the commit could not be recreated and the replay stopped
	ReplayConflicted
)

func (s ReplayState) String() string {
	switch s {
	case ReplayPending:
		return "pending"
	case ReplayReplaying:
		return "replaying"
	case ReplayReplayed:
		return "replayed"
	case ReplayConflicted:
		return "conflicted"
	default:
		return fmt.Sprintf("ReplayState(%d)", int(s))
	}
}

// ReplayStep tracks a single commit of a replay
type ReplayStep struct {
	Commit      *git.Commit
	State       ReplayState
	Replacement string
}

// HistoryReplayer recreates a chain of commits on top of a new base
type HistoryReplayer struct {
	repo *git.Repository
	log  Logger
}

// NewHistoryReplayer creates a HistoryReplayer
func NewHistoryReplayer(repo *git.Repository, log Logger) *HistoryReplayer {
	if log == nil {
		log = nopLogger{}
	}
	return &HistoryReplayer{repo: repo, log: log}
}

// Replay recreates each commit of chain, in order, on top of onto. Each commit's
// own change is three-way merged onto the previous replacement, and its message and
// author are kept. Every replacement is recorded in rewrites. The first conflict
// stops the replay with a ReplayConflictError; steps reports how far it got.
func (h *HistoryReplayer) Replay(ctx context.Context, chain CommitChain, onto string, rewrites *RewriteMap) ([]ReplayStep, error) {
	steps := make([]ReplayStep, len(chain))
	for i, commit := range chain {
		steps[i] = ReplayStep{Commit: commit, State: ReplayPending}
	}

	parent := onto
	for i := range steps {
		step := &steps[i]
		step.State = ReplayReplaying

		replacement, err := h.replayOne(ctx, step.Commit, parent)
		if err != nil {
			step.State = ReplayConflicted
			return steps, err
		}
		if err := rewrites.Record(step.Commit.Hash, replacement); err != nil {
			step.State = ReplayConflicted
			return steps, err
		}

		step.State = ReplayReplayed
		step.Replacement = replacement
		parent = replacement
		h.log.Debug("Replayed %s as %s", step.Commit.Hash, replacement)
	}
	return steps, nil
}

func (h *HistoryReplayer) replayOne(ctx context.Context, commit *git.Commit, parent string) (string, error) {
	if commit.IsMerge() {
		return "", fmt.Errorf("%w: %s", instafixerrors.ErrNonLinearHistory, commit.Hash)
	}

	// Already in place
	if commit.Parent() == parent {
		return commit.Hash, nil
	}

	result, err := h.repo.MergeTree(ctx, commit.Parent(), parent, commit.Hash)
	if err != nil {
		return "", fmt.Errorf("failed to replay %s: %w", commit.ShortHash(10), err)
	}
	if !result.Clean() {
		return "", instafixerrors.NewReplayConflictError(commit.Hash, commit.Summary(), result.Conflicts)
	}

	return h.repo.CommitTree(ctx, git.CommitTreeOptions{
		Tree:        result.Tree,
		Parents:     []string{parent},
		Message:     commit.Message,
		AuthorName:  commit.AuthorName,
		AuthorEmail: commit.AuthorEmail,
		AuthorWhen:  commit.AuthorWhen,
	})
}

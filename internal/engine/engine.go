package engine

import (
	"context"
	"errors"
	"fmt"

	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
)

// Engine runs history rewriting operations against one repository
type Engine struct {
	repo       *git.Repository
	log        Logger
	resolver   *RangeResolver
	stash      *StashManager
	amender    *PatchAmender
	replayer   *HistoryReplayer
	retargeter *RefRetargeter
	journal    *Journal
}

// Options configures an Engine
type Options struct {
	Logger Logger
	// MaxUndoDepth is the number of undo snapshots kept
	MaxUndoDepth int
}

// New creates an Engine for repo
func New(ctx context.Context, repo *git.Repository, opts Options) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	gitDir, err := repo.GitDir(ctx)
	if err != nil {
		return nil, err
	}

	return &Engine{
		repo:       repo,
		log:        log,
		resolver:   NewRangeResolver(repo),
		stash:      NewStashManager(repo, log),
		amender:    NewPatchAmender(repo, log),
		replayer:   NewHistoryReplayer(repo, log),
		retargeter: NewRefRetargeter(repo, log),
		journal:    NewJournal(gitDir, opts.MaxUndoDepth),
	}, nil
}

// Repository returns the repository the engine operates on
func (e *Engine) Repository() *git.Repository {
	return e.repo
}

// Journal returns the undo journal
func (e *Engine) Journal() *Journal {
	return e.journal
}

// ResolveRange computes the candidate chain for spec
func (e *Engine) ResolveRange(ctx context.Context, spec UpstreamSpec) (*Range, error) {
	return e.resolver.Resolve(ctx, spec)
}

// Candidates returns up to limit commits of rng, newest first, labelled with the
// local branches that point at them
func (e *Engine) Candidates(rng *Range, limit int) ([]Candidate, error) {
	branches, err := e.repo.LocalBranches()
	if err != nil {
		return nil, err
	}
	byCommit := make(map[string][]string)
	for _, b := range branches {
		if b.Name == rng.Head.Branch {
			continue
		}
		byCommit[b.Hash] = append(byCommit[b.Hash], b.Name)
	}

	newest := rng.Chain.Newest(limit)
	candidates := make([]Candidate, 0, len(newest))
	for _, commit := range newest {
		c := Candidate{Commit: commit, IsHead: commit.Hash == rng.Head.Hash}
		if !c.IsHead {
			c.Branches = byCommit[commit.Hash]
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// Operation identifies one invocation for logs and the undo journal
type Operation struct {
	ID      string
	Command string
	Args    []string
}

// FixupOptions configures Fixup
type FixupOptions struct {
	Operation  Operation
	Upstream   UpstreamSpec
	MaxCommits int
	Selector   Selector
	// Editor is consulted only when non-nil
	Editor MessageEditor
}

// Fixup moves the staged changes into a commit chosen by opts.Selector, replays
// the commits after it and moves every affected branch. Unstaged and untracked
// work is stashed for the duration and restored on every exit path.
func (e *Engine) Fixup(ctx context.Context, opts FixupOptions) (result *FixupResult, err error) {
	if e.repo.IsRebaseInProgress(ctx) {
		return nil, instafixerrors.ErrRebaseInProgress
	}

	staged, err := e.repo.HasStagedChanges(ctx)
	if err != nil {
		return nil, err
	}
	if !staged {
		return nil, instafixerrors.ErrNoStagedChanges
	}

	rng, err := e.resolver.Resolve(ctx, opts.Upstream)
	if err != nil {
		return nil, err
	}
	e.log.Debug("Resolved %d commits between %s and %s", len(rng.Chain), rng.Upstream, rng.Head.Hash)

	candidates, err := e.Candidates(rng, opts.MaxCommits)
	if err != nil {
		return nil, err
	}
	target, err := opts.Selector.SelectTarget(ctx, candidates)
	if err != nil {
		return nil, err
	}
	if rng.Chain.Index(target.Hash) < 0 {
		return nil, fmt.Errorf("%s is not between %s and HEAD", target.Hash, rng.Upstream)
	}

	message := ""
	if opts.Editor != nil {
		message, err = opts.Editor.EditMessage(ctx, target)
		if err != nil {
			return nil, err
		}
	}

	patch, err := e.repo.StagedPatch(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := e.stash.Save(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		// still runs after an interrupt cancels ctx
		if restoreErr := e.stash.Restore(context.WithoutCancel(ctx), entry); restoreErr != nil {
			err = errors.Join(err, restoreErr)
		}
	}()

	rewrites := NewRewriteMap()
	amended, err := e.amender.Amend(ctx, target, patch, message, rewrites)
	if err != nil {
		return nil, err
	}

	if _, err := e.replayer.Replay(ctx, rng.Chain.After(target.Hash), amended, rewrites); err != nil {
		return nil, err
	}

	updated, snapshotID, err := e.publish(ctx, opts.Operation, rng.Head, rewrites, true)
	result = &FixupResult{
		Target:     target,
		Amended:    amended,
		Rewrites:   rewrites,
		Updated:    updated,
		SnapshotID: snapshotID,
	}
	return result, err
}

// RebaseOptions configures RebaseWithIntermediates
type RebaseOptions struct {
	Operation Operation
	Onto      string
}

// RebaseWithIntermediates replays the commits between the merge base of HEAD and
// opts.Onto onto opts.Onto, moving every branch that pointed into them along.
func (e *Engine) RebaseWithIntermediates(ctx context.Context, opts RebaseOptions) (result *RebaseResult, err error) {
	if e.repo.IsRebaseInProgress(ctx) {
		return nil, instafixerrors.ErrRebaseInProgress
	}

	rng, err := e.resolver.Resolve(ctx, UpstreamSpec{Name: opts.Onto, Source: "argument"})
	if err != nil {
		return nil, err
	}
	onto, err := e.repo.ResolveRefHash(opts.Onto)
	if err != nil {
		return nil, err
	}

	entry, err := e.stash.Save(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if restoreErr := e.stash.Restore(context.WithoutCancel(ctx), entry); restoreErr != nil {
			err = errors.Join(err, restoreErr)
		}
	}()

	rewrites := NewRewriteMap()
	if _, err := e.replayer.Replay(ctx, rng.Chain, onto.String(), rewrites); err != nil {
		return nil, err
	}

	updated, _, err := e.publish(ctx, opts.Operation, rng.Head, rewrites, false)
	return &RebaseResult{Onto: onto.String(), Rewrites: rewrites, Updated: updated}, err
}

// publish records an undo snapshot and retargets refs
func (e *Engine) publish(ctx context.Context, op Operation, head Head, rewrites *RewriteMap, keepIndex bool) ([]RefUpdate, string, error) {
	plan, err := e.retargeter.Plan(head, rewrites)
	if err != nil {
		return nil, "", err
	}

	snapshot := &Snapshot{
		OperationID:   op.ID,
		Command:       op.Command,
		Args:          op.Args,
		CurrentBranch: head.Branch,
		KeepIndex:     keepIndex,
	}
	for _, u := range plan {
		snapshot.Refs = append(snapshot.Refs, SnapshotRef{Ref: u.Ref, Branch: u.Branch, Old: u.Old, New: u.New})
	}
	snapshotID, err := e.journal.Record(snapshot)
	if err != nil {
		e.log.Debug("Failed to take snapshot: %v", err)
	}

	reason := fmt.Sprintf("%s: retarget to rewritten history", op.Command)
	updated, err := e.retargeter.Retarget(ctx, head, rewrites, reason)
	return updated, snapshotID, err
}

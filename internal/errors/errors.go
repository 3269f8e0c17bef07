// Package errors provides sentinel errors and custom error types for git-instafix.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNoUpstream indicates that no upstream was configured and none of the
	// default trunk branches could be found
	ErrNoUpstream = errors.New("no upstream branch found")

	// ErrEmptyChain indicates that HEAD is already at the merge base
	ErrEmptyChain = errors.New("no commits between HEAD and upstream")

	// ErrUpstreamEqualsCurrent indicates the configured upstream is the branch being fixed
	ErrUpstreamEqualsCurrent = errors.New("upstream is the current branch")

	// ErrNoStagedChanges indicates there is nothing in the index to move into history
	ErrNoStagedChanges = errors.New("nothing staged")

	// ErrApplyConflict indicates the staged diff does not apply to the target commit
	ErrApplyConflict = errors.New("staged changes do not apply to target commit")

	// ErrReplayConflict indicates a descendant commit could not be replayed
	ErrReplayConflict = errors.New("replay conflict")

	// ErrStashRestoreConflict indicates the stashed changes conflict with the rewritten tree
	ErrStashRestoreConflict = errors.New("stash restore conflict")

	// ErrRefUpdate indicates one or more refs could not be retargeted
	ErrRefUpdate = errors.New("ref update failed")

	// ErrCanceled indicates the user aborted at a prompt
	ErrCanceled = errors.New("canceled")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrRebaseInProgress indicates a rebase, merge or cherry-pick is already running
	ErrRebaseInProgress = errors.New("a rebase is already in progress")

	// ErrNonLinearHistory indicates a merge commit between HEAD and the merge base
	ErrNonLinearHistory = errors.New("history contains a merge commit")

	// ErrNoUndoSnapshot indicates there is nothing recorded to undo
	ErrNoUndoSnapshot = errors.New("nothing to undo")
)

// UpstreamEqualsCurrentError is returned when the configured upstream names the current branch
type UpstreamEqualsCurrentError struct {
	Upstream string
	Source   string
}

func (e *UpstreamEqualsCurrentError) Error() string {
	src := ""
	if e.Source != "" {
		src = fmt.Sprintf(" (from %s)", e.Source)
	}
	return fmt.Sprintf("upstream %q%s is the current branch; set a different upstream with --upstream, GIT_INSTAFIX_UPSTREAM or `git config instafix.default-upstream-branch`", e.Upstream, src)
}

// Is returns true if the target error is ErrUpstreamEqualsCurrent
func (e *UpstreamEqualsCurrentError) Is(target error) bool {
	return target == ErrUpstreamEqualsCurrent
}

// NewUpstreamEqualsCurrentError creates a new UpstreamEqualsCurrentError
func NewUpstreamEqualsCurrentError(upstream, source string) *UpstreamEqualsCurrentError {
	return &UpstreamEqualsCurrentError{Upstream: upstream, Source: source}
}

// ApplyConflictError represents a staged diff that cannot be combined with the target tree
type ApplyConflictError struct {
	Target string
	Paths  []string
	Detail string
}

func (e *ApplyConflictError) Error() string {
	msg := fmt.Sprintf("staged changes do not apply to %s", short(e.Target))
	if len(e.Paths) > 0 {
		msg += fmt.Sprintf(" (conflicting paths: %s)", strings.Join(e.Paths, ", "))
	}
	return msg
}

// Is returns true if the target error is ErrApplyConflict
func (e *ApplyConflictError) Is(target error) bool {
	return target == ErrApplyConflict
}

// NewApplyConflictError creates a new ApplyConflictError
func NewApplyConflictError(target string, paths []string, detail string) *ApplyConflictError {
	return &ApplyConflictError{Target: target, Paths: paths, Detail: detail}
}

// ReplayConflictError represents a commit that could not be replayed onto its new parent
type ReplayConflictError struct {
	Commit  string
	Summary string
	Paths   []string
}

func (e *ReplayConflictError) Error() string {
	msg := fmt.Sprintf("conflict replaying %s", short(e.Commit))
	if e.Summary != "" {
		msg += fmt.Sprintf(" %q", e.Summary)
	}
	if len(e.Paths) > 0 {
		msg += fmt.Sprintf(" (conflicting paths: %s)", strings.Join(e.Paths, ", "))
	}
	return msg
}

// Is returns true if the target error is ErrReplayConflict
func (e *ReplayConflictError) Is(target error) bool {
	return target == ErrReplayConflict
}

// NewReplayConflictError creates a new ReplayConflictError
func NewReplayConflictError(commit, summary string, paths []string) *ReplayConflictError {
	return &ReplayConflictError{Commit: commit, Summary: summary, Paths: paths}
}

// StashRestoreConflictError is returned when stashed changes could not be reapplied.
// The stash entry is left in place.
type StashRestoreConflictError struct {
	Stash string
	Err   error
}

func (e *StashRestoreConflictError) Error() string {
	return fmt.Sprintf("your uncommitted changes conflict with the rewritten history and were kept in stash %s; apply them with `git stash apply %s`", short(e.Stash), short(e.Stash))
}

// Is returns true if the target error is ErrStashRestoreConflict
func (e *StashRestoreConflictError) Is(target error) bool {
	return target == ErrStashRestoreConflict
}

func (e *StashRestoreConflictError) Unwrap() error {
	return e.Err
}

// NewStashRestoreConflictError creates a new StashRestoreConflictError
func NewStashRestoreConflictError(stash string, err error) *StashRestoreConflictError {
	return &StashRestoreConflictError{Stash: stash, Err: err}
}

// RefFailure describes a single ref that could not be updated
type RefFailure struct {
	Ref string
	Err error
}

// RefUpdateError reports which refs were retargeted and which were not.
// No rollback is attempted for the refs in Succeeded.
type RefUpdateError struct {
	Succeeded []string
	Failed    []RefFailure
}

func (e *RefUpdateError) Error() string {
	var b strings.Builder
	if e.Partial() {
		b.WriteString("history was partially changed: ")
	} else {
		b.WriteString("no refs were changed: ")
	}
	failed := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		failed = append(failed, fmt.Sprintf("%s (%v)", f.Ref, f.Err))
	}
	b.WriteString("failed to update ")
	b.WriteString(strings.Join(failed, ", "))
	if len(e.Succeeded) > 0 {
		b.WriteString("; updated ")
		b.WriteString(strings.Join(e.Succeeded, ", "))
	}
	return b.String()
}

// Partial returns true if some refs were updated before the failure
func (e *RefUpdateError) Partial() bool {
	return len(e.Succeeded) > 0
}

// Is returns true if the target error is ErrRefUpdate
func (e *RefUpdateError) Is(target error) bool {
	return target == ErrRefUpdate
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

// IsPartial reports whether err is a ref update failure that left some refs moved
func IsPartial(err error) bool {
	var refErr *RefUpdateError
	return errors.As(err, &refErr) && refErr.Partial()
}

func short(sha string) string {
	if len(sha) > 10 {
		return sha[:10]
	}
	return sha
}

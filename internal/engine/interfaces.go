package engine

import (
	"context"

	"instafix.dev/instafix/internal/git"
)

// Selector picks the commit to amend. Candidates are ordered newest first.
// Implementations return errors.ErrCanceled when the user aborts.
type Selector interface {
	SelectTarget(ctx context.Context, candidates []Candidate) (*git.Commit, error)
}

// MessageEditor lets the user rewrite the message of the commit being amended.
// Implementations return errors.ErrCanceled when the user aborts.
type MessageEditor interface {
	EditMessage(ctx context.Context, commit *git.Commit) (string, error)
}

// Logger receives debug output from the engine
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

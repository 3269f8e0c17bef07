package runtime

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"instafix.dev/instafix/internal/engine"
	"instafix.dev/instafix/internal/git"
	"instafix.dev/instafix/internal/tui"
)

// Context provides access to engine and output for commands
type Context struct {
	context.Context
	Engine *engine.Engine
	Repo   *git.Repository
	Splog  *tui.Splog
	// OperationID tags log records and the undo snapshot of this invocation
	OperationID string
	RepoRoot    string
}

// NewContext creates a new context for repo, logging through splog
func NewContext(ctx context.Context, repo *git.Repository, splog *tui.Splog) (*Context, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opID := uuid.NewString()
	splog.WithOperation(opID)

	eng, err := engine.New(ctx, repo, engine.Options{Logger: splog})
	if err != nil {
		return nil, err
	}

	return &Context{
		Context:     ctx,
		Engine:      eng,
		Repo:        repo,
		Splog:       splog,
		OperationID: opID,
		RepoRoot:    repo.Root(),
	}, nil
}

// GetContext opens the repository containing the working directory and
// returns a context for it. Parent directories are searched for the repository.
func GetContext(ctx context.Context) (*Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	repo, err := git.OpenRepository(cwd)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	return NewContext(ctx, repo, newSplog())
}

// newSplog logs to stdout and the log file, falling back to stdout alone when
// the log file cannot be created
func newSplog() *tui.Splog {
	splog, err := tui.NewSplogWithConfig(os.Stdout, tui.GetLogFilePath())
	if err != nil {
		splog = tui.NewSplog()
		splog.Debug("file logging disabled: %v", err)
	}
	return splog
}

package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ConfigGet reads a git config value through the git CLI, so every config
// scope and include participates. ok is false when the key is unset.
func (r *Repository) ConfigGet(ctx context.Context, key string) (value string, ok bool, err error) {
	output, err := r.runner.Run(ctx, "config", "--get", key)
	if err != nil {
		// git config exits 1 for a missing key
		if gitErr, isGit := commandFailure(err); isGit && gitErr.ExitCode == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read config %s: %w", key, err)
	}
	return output, true, nil
}

// ConfigGetBool reads a boolean git config value
func (r *Repository) ConfigGetBool(ctx context.Context, key string) (value bool, ok bool, err error) {
	output, err := r.runner.Run(ctx, "config", "--type=bool", "--get", key)
	if err != nil {
		if gitErr, isGit := commandFailure(err); isGit && gitErr.ExitCode == 1 {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to read config %s: %w", key, err)
	}
	b, err := strconv.ParseBool(strings.TrimSpace(output))
	if err != nil {
		return false, false, fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	return b, true, nil
}

// Var returns the value of a git logical variable such as GIT_EDITOR
func (r *Repository) Var(ctx context.Context, name string) (string, error) {
	output, err := r.runner.Run(ctx, "var", name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return output, nil
}

// CommentChar returns the configured comment character for commit messages
func (r *Repository) CommentChar(ctx context.Context) string {
	value, ok, err := r.ConfigGet(ctx, "core.commentChar")
	if err != nil || !ok || value == "" || value == "auto" {
		return "#"
	}
	return value
}

// ConfigSet writes a value to the repository's local git config
func (r *Repository) ConfigSet(ctx context.Context, key, value string) error {
	if _, err := r.runner.Run(ctx, "config", "--local", key, value); err != nil {
		return fmt.Errorf("failed to set config %s: %w", key, err)
	}
	return nil
}

// ConfigUnset removes a key from the repository's local git config. Removing
// a key that is not set is not an error.
func (r *Repository) ConfigUnset(ctx context.Context, key string) error {
	if _, err := r.runner.Run(ctx, "config", "--local", "--unset-all", key); err != nil {
		// git config exits 5 when the key is not set
		if gitErr, isGit := commandFailure(err); isGit && gitErr.ExitCode == 5 {
			return nil
		}
		return fmt.Errorf("failed to unset config %s: %w", key, err)
	}
	return nil
}

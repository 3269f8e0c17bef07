package config

import (
	"context"
	"fmt"
	"strconv"
)

// Git config keys read by git-instafix
const (
	KeyUpstream       = "instafix.default-upstream-branch"
	KeyMaxCommits     = "instafix.max-commits"
	KeyRequireNewline = "instafix.require-newline"
	KeySquash         = "instafix.squash"
)

// GitConfigReader reads values from git config
type GitConfigReader interface {
	ConfigGet(ctx context.Context, key string) (string, bool, error)
	ConfigGetBool(ctx context.Context, key string) (bool, bool, error)
}

// RepoConfig represents the instafix.* keys set in git config.
// Unset keys are nil.
type RepoConfig struct {
	Upstream       *string
	MaxCommits     *int
	RequireNewline *bool
	Squash         *bool
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(ctx context.Context, reader GitConfigReader) (*RepoConfig, error) {
	config := &RepoConfig{}

	if value, ok, err := reader.ConfigGet(ctx, KeyUpstream); err != nil {
		return nil, err
	} else if ok && value != "" {
		config.Upstream = &value
	}

	if value, ok, err := reader.ConfigGet(ctx, KeyMaxCommits); err != nil {
		return nil, err
	} else if ok && value != "" {
		n, err := parseMaxCommits(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyMaxCommits, err)
		}
		config.MaxCommits = &n
	}

	if value, ok, err := reader.ConfigGetBool(ctx, KeyRequireNewline); err != nil {
		return nil, err
	} else if ok {
		config.RequireNewline = &value
	}

	if value, ok, err := reader.ConfigGetBool(ctx, KeySquash); err != nil {
		return nil, err
	} else if ok {
		config.Squash = &value
	}

	return config, nil
}

func parseMaxCommits(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables that override git config
const (
	EnvUpstream       = "GIT_INSTAFIX_UPSTREAM"
	EnvMaxCommits     = "GIT_INSTAFIX_MAX_COMMITS"
	EnvRequireNewline = "GIT_INSTAFIX_REQUIRE_NEWLINE"
	EnvSquash         = "GIT_INSTAFIX_SQUASH"
)

// DefaultMaxCommits is the number of candidates shown when nothing else is configured
const DefaultMaxCommits = 15

// Flags holds values given on the command line. Nil means the flag was not passed.
type Flags struct {
	Upstream       *string
	MaxCommits     *int
	RequireNewline *bool
	Squash         *bool
}

// Settings is the resolved configuration of one invocation
type Settings struct {
	// Upstream is empty when the default branch search should be used
	Upstream string
	// UpstreamSource names where Upstream came from, for error messages
	UpstreamSource string
	MaxCommits     int
	RequireNewline bool
	Squash         bool
}

// Resolve combines flags, environment, git config and defaults, in that order.
// An invocation name ending in "squash" turns squash on regardless.
func Resolve(ctx context.Context, reader GitConfigReader, flags Flags, invokedAs string) (*Settings, error) {
	repoConfig, err := GetRepoConfig(ctx, reader)
	if err != nil {
		return nil, err
	}

	settings := &Settings{MaxCommits: DefaultMaxCommits}

	switch {
	case flags.Upstream != nil && *flags.Upstream != "":
		settings.Upstream, settings.UpstreamSource = *flags.Upstream, "--upstream"
	case os.Getenv(EnvUpstream) != "":
		settings.Upstream, settings.UpstreamSource = os.Getenv(EnvUpstream), EnvUpstream
	case repoConfig.Upstream != nil:
		settings.Upstream, settings.UpstreamSource = *repoConfig.Upstream, KeyUpstream
	}

	switch {
	case flags.MaxCommits != nil:
		if *flags.MaxCommits <= 0 {
			return nil, fmt.Errorf("--max-commits must be positive, got %d", *flags.MaxCommits)
		}
		settings.MaxCommits = *flags.MaxCommits
	case os.Getenv(EnvMaxCommits) != "":
		n, err := parseMaxCommits(os.Getenv(EnvMaxCommits))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvMaxCommits, err)
		}
		settings.MaxCommits = n
	case repoConfig.MaxCommits != nil:
		settings.MaxCommits = *repoConfig.MaxCommits
	}

	settings.RequireNewline, err = resolveBool(flags.RequireNewline, EnvRequireNewline, repoConfig.RequireNewline)
	if err != nil {
		return nil, err
	}
	settings.Squash, err = resolveBool(flags.Squash, EnvSquash, repoConfig.Squash)
	if err != nil {
		return nil, err
	}
	if IsSquashInvocation(invokedAs) {
		settings.Squash = true
	}

	return settings, nil
}

// IsSquashInvocation reports whether the binary was started under a name ending in "squash"
func IsSquashInvocation(argv0 string) bool {
	if argv0 == "" {
		return false
	}
	name := strings.TrimSuffix(filepath.Base(argv0), ".exe")
	return strings.HasSuffix(name, "squash")
}

func resolveBool(flag *bool, env string, fromConfig *bool) (bool, error) {
	if flag != nil {
		return *flag, nil
	}
	if value := os.Getenv(env); value != "" {
		b, err := parseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s: %w", env, err)
		}
		return b, nil
	}
	if fromConfig != nil {
		return *fromConfig, nil
	}
	return false, nil
}

// parseBool accepts the spellings git accepts for booleans
func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", value)
	}
}

package actions

import (
	"context"
	"fmt"
	"strings"

	"instafix.dev/instafix/internal/engine"
	"instafix.dev/instafix/internal/git"
)

// PatternSelector picks the newest candidate whose summary contains Pattern
type PatternSelector struct {
	Pattern string
}

// SelectTarget implements engine.Selector
func (s PatternSelector) SelectTarget(_ context.Context, candidates []engine.Candidate) (*git.Commit, error) {
	for _, c := range candidates {
		if strings.Contains(c.Commit.Summary(), s.Pattern) {
			return c.Commit, nil
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no commit has a summary containing %q", s.Pattern)
	}
	newest := candidates[0].Commit
	oldest := candidates[len(candidates)-1].Commit
	return nil, fmt.Errorf("no commit in %s^..%s has a summary containing %q",
		oldest.ShortHash(10), newest.ShortHash(10), s.Pattern)
}

package tui

import (
	"context"
	"fmt"
	"strings"

	"instafix.dev/instafix/internal/engine"
	"instafix.dev/instafix/internal/git"
)

// shaWidth is the number of hash characters shown for a candidate
const shaWidth = 10

// FormatCandidate renders a candidate as "<sha> (<branches>) <summary>"
func FormatCandidate(c engine.Candidate) string {
	var b strings.Builder
	b.WriteString(ColorSHA(c.Commit.ShortHash(shaWidth)))
	if len(c.Branches) > 0 {
		b.WriteString(" ")
		b.WriteString(ColorBranchName(fmt.Sprintf("(%s)", strings.Join(c.Branches, ", "))))
	}
	b.WriteString(" ")
	b.WriteString(c.Commit.Summary())
	return b.String()
}

// CommitSelector asks the user to pick a candidate in the terminal
type CommitSelector struct {
	Title string
}

// SelectTarget implements engine.Selector
func (s CommitSelector) SelectTarget(_ context.Context, candidates []engine.Candidate) (*git.Commit, error) {
	options := make([]SelectOption, 0, len(candidates))
	for _, c := range candidates {
		options = append(options, SelectOption{
			Label:  FormatCandidate(c),
			Filter: c.Commit.ShortHash(shaWidth) + " " + strings.Join(c.Branches, " ") + " " + c.Commit.Summary(),
		})
	}

	title := s.Title
	if title == "" {
		title = "Select a commit to amend:"
	}
	idx, err := PromptSelect(title, options)
	if err != nil {
		return nil, err
	}
	return candidates[idx].Commit, nil
}

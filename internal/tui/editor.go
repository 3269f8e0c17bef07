package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"instafix.dev/instafix/internal/engine"
	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
)

// MessageEditor opens git's configured editor on the message of the commit being amended
type MessageEditor struct {
	repo *git.Repository
}

// NewMessageEditor creates a MessageEditor for repo
func NewMessageEditor(repo *git.Repository) *MessageEditor {
	return &MessageEditor{repo: repo}
}

// EditMessage implements engine.MessageEditor
func (e *MessageEditor) EditMessage(ctx context.Context, commit *git.Commit) (string, error) {
	if !IsTTY() {
		return "", ErrNotInteractive
	}

	// GIT_EDITOR, core.editor, VISUAL and EDITOR in git's own order
	editor, err := e.repo.Var(ctx, "GIT_EDITOR")
	if err != nil {
		return "", err
	}
	commentChar := e.repo.CommentChar(ctx)

	prompt := &survey.Editor{
		Message:       fmt.Sprintf("New message for %s %q", commit.ShortHash(shaWidth), commit.Summary()),
		Default:       engine.MessageTemplate(commit, commentChar),
		HideDefault:   true,
		AppendDefault: true,
		Editor:        editor,
		FileName:      "COMMIT_EDITMSG*",
	}

	var text string
	if err := survey.AskOne(prompt, &text); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", instafixerrors.ErrCanceled
		}
		return "", fmt.Errorf("failed to edit message: %w", err)
	}

	return engine.CleanMessage(text, commentChar)
}

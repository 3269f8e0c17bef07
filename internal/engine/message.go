package engine

import (
	"strings"

	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
)

// MessageTemplate returns the text presented to the user when editing the
// message of commit. Lines starting with commentChar are stripped afterwards.
func MessageTemplate(commit *git.Commit, commentChar string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(commit.Message, "\n"))
	b.WriteString("\n\n")
	b.WriteString(commentChar + " Editing the message of " + commit.ShortHash(10) + ".\n")
	b.WriteString(commentChar + " Lines starting with '" + commentChar + "' will be ignored, and an empty message aborts.\n")
	return b.String()
}

// CleanMessage strips comment lines and surrounding blank lines from an edited
// message. An empty result means the user aborted.
func CleanMessage(text, commentChar string) (string, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if commentChar != "" && strings.HasPrefix(line, commentChar) {
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t\r"))
	}

	message := strings.TrimSpace(strings.Join(lines, "\n"))
	if message == "" {
		return "", instafixerrors.ErrCanceled
	}
	return message + "\n", nil
}

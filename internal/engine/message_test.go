package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"instafix.dev/instafix/internal/engine"
	instafixerrors "instafix.dev/instafix/internal/errors"
	"instafix.dev/instafix/internal/git"
)

func TestCleanMessage(t *testing.T) {
	message, err := engine.CleanMessage("# header\n\nSubject  \n\nBody line\n# trailing comment\n\n", "#")
	require.NoError(t, err)
	require.Equal(t, "Subject\n\nBody line\n", message)

	message, err = engine.CleanMessage("#keep\n; drop\n", ";")
	require.NoError(t, err)
	require.Equal(t, "#keep\n", message)

	_, err = engine.CleanMessage("# only comments\n\n", "#")
	require.ErrorIs(t, err, instafixerrors.ErrCanceled)
}

func TestMessageTemplate(t *testing.T) {
	commit := &git.Commit{Hash: "0123456789abcdef0123", Message: "Subject\n\nBody\n"}

	template := engine.MessageTemplate(commit, "#")
	require.Contains(t, template, "# Editing the message of 0123456789.")

	message, err := engine.CleanMessage(template, "#")
	require.NoError(t, err)
	require.Equal(t, commit.Message, message)
}

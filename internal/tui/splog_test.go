package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplog(t *testing.T) {
	t.Setenv("DEBUG", "")

	var console bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "logs", "git-instafix.log")
	splog, err := NewSplogWithConfig(&console, logFile)
	require.NoError(t, err)

	splog.Info("hello %s", "world")
	splog.WithOperation("op-1")
	splog.Info("second")
	splog.Debug("only in the file")
	splog.SetQuiet(true)
	splog.Info("hidden")
	splog.SetQuiet(false)
	splog.Warn("careful")
	require.NoError(t, splog.Close())

	require.Equal(t, "hello world\nsecond\n⚠️  careful\n", console.String())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, `msg="hello world"`)
	require.Contains(t, content, "msg=second op=op-1")
	require.Contains(t, content, `msg="only in the file" op=op-1`)
	require.Contains(t, content, "msg=hidden")
}

func TestSplogDebugOnConsole(t *testing.T) {
	t.Setenv("DEBUG", "1")

	var console bytes.Buffer
	splog, err := NewSplogWithConfig(&console, "")
	require.NoError(t, err)
	splog.Debug("details %d", 42)
	splog.WithOperation("ignored without a file")
	splog.Info("done")

	require.Equal(t, "details 42\ndone\n", console.String())
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("GIT_INSTAFIX_LOG_FILE", "/tmp/custom.log")
	require.Equal(t, "/tmp/custom.log", GetLogFilePath())

	t.Setenv("GIT_INSTAFIX_LOG_FILE", "")
	t.Setenv("HOME", "/home/someone")
	require.Equal(t, filepath.Join("/home/someone", ".git-instafix", "logs", "git-instafix.log"), GetLogFilePath())
}

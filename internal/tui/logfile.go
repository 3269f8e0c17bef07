package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GIT_INSTAFIX_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.git-instafix/logs/git-instafix.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GIT_INSTAFIX_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "git-instafix.log"
	}

	return filepath.Join(homeDir, ".git-instafix", "logs", "git-instafix.log")
}

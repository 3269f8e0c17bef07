// Package tui provides the terminal user interface for git-instafix.
//
// It handles:
//   - Commit selection and confirmation prompts (using bubbletea)
//   - Editing commit messages (using survey)
//   - Structured logging and status reporting (Splog)
//   - Rendering staged diffs and diffstats (using lipgloss)
package tui

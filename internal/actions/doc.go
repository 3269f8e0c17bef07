// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a git-instafix command (fixup, rebase, undo)
// and orchestrates the engine, the repository and the terminal.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Engine, Splog, and other dependencies
//   - Interaction with the user goes through the tui package
//   - Errors are returned to the caller after the user has been told how to recover
package actions

// Package git provides low-level Git operations.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Reading commits, refs and merge bases (via go-git)
//   - Building trees and commits in the object store without touching the work tree
//   - Stashing and restoring uncommitted changes
//   - Updating refs with reflog messages
//
// This package should be the only place where direct git commands are executed.
package git

// Package engine rewrites branch history to move staged changes into an older commit.
//
// It is the core of git-instafix, responsible for:
//   - Resolving the chain of commits between HEAD and its upstream
//   - Stashing and restoring uncommitted work around an operation
//   - Amending a historical commit with the staged diff
//   - Replaying the commits that followed it onto the amended commit
//   - Moving every branch that pointed at a rewritten commit
//
// All new commits are built in the object store; refs move only after every
// commit in the chain has been replayed.
package engine

// Package runtime provides the execution context for git-instafix commands.
//
// It encapsulates shared dependencies needed by actions, such as the engine
// instance, the logger, the repository and the id of the running operation.
package runtime

// Package config resolves git-instafix settings.
//
// Each setting is taken from the first place that sets it:
//   - Command line flags
//   - GIT_INSTAFIX_* environment variables
//   - instafix.* keys in git config
//   - Built-in defaults
package config

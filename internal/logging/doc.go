// Package logging provides logging utilities for arenactl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("launching unit", "name", name, "image", image)
//	logging.Warn("cleanup failed", "unit", name, "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Waiting for game %s to finish...", game)
//	logging.UserSuccess("Game %s finished", game)
//	logging.UserWarning("Viewer could not be launched: %v", err)
//	logging.UserError("Game failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging

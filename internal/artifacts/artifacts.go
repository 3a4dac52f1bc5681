// Package artifacts locates files a previous match with the same name
// left behind: unit logs, replays, result files, and frame-timing
// files. The runner deletes them before launch so a reused match name
// starts clean.
package artifacts

import (
	"path/filepath"
)

// FindLogs returns unit log files for the match name.
func FindLogs(logDir, game string) []string {
	return glob(filepath.Join(logDir, game+"_*.log"))
}

// FindReplays returns replay files for the match name. Replays are
// written by the game into the replays directory under the map dir.
func FindReplays(mapDir, game string) []string {
	return glob(filepath.Join(mapDir, "replays", game+"_*.rep"))
}

// FindResults returns result files for the match name.
func FindResults(logDir, game string) []string {
	return glob(filepath.Join(logDir, game+"_*_results.json"))
}

// FindFrames returns frame-timing files for the match name.
func FindFrames(logDir, game string) []string {
	return glob(filepath.Join(logDir, game+"_*_frames.csv"))
}

// Find returns every known artifact of the match name.
func Find(logDir, mapDir, game string) []string {
	var files []string
	files = append(files, FindLogs(logDir, game)...)
	files = append(files, FindReplays(mapDir, game)...)
	files = append(files, FindResults(logDir, game)...)
	files = append(files, FindFrames(logDir, game)...)
	return files
}

func glob(pattern string) []string {
	// The only possible error is a malformed pattern, and ours are
	// built from validated match names.
	matches, _ := filepath.Glob(pattern)
	return matches
}

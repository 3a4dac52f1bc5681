package artifacts

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("touch: %v", err)
	}
}

func TestFind(t *testing.T) {
	logDir := t.TempDir()
	mapDir := t.TempDir()

	want := []string{
		filepath.Join(logDir, "m1_0_bot.log"),
		filepath.Join(logDir, "m1_0_results.json"),
		filepath.Join(logDir, "m1_1_frames.csv"),
		filepath.Join(mapDir, "replays", "m1_0.rep"),
	}
	for _, f := range want {
		touch(t, f)
	}

	// Files of other matches must not match.
	touch(t, filepath.Join(logDir, "m2_0_results.json"))
	touch(t, filepath.Join(logDir, "unrelated.txt"))

	got := Find(logDir, mapDir, "m1")
	slices.Sort(got)
	slices.Sort(want)

	if !slices.Equal(got, want) {
		t.Errorf("Find = %v, want %v", got, want)
	}
}

func TestFind_Empty(t *testing.T) {
	got := Find(t.TempDir(), t.TempDir(), "m1")
	if len(got) != 0 {
		t.Errorf("Find on empty dirs = %v, want none", got)
	}
}

func TestFindResults_DoesNotMatchFrames(t *testing.T) {
	logDir := t.TempDir()
	touch(t, filepath.Join(logDir, "m1_0_frames.csv"))

	if got := FindResults(logDir, "m1"); len(got) != 0 {
		t.Errorf("FindResults matched frame files: %v", got)
	}
}

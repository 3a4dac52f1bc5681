// Package testutil provides test fixtures for match-level tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arena-engineering/arenactl/internal/config"
	"github.com/arena-engineering/arenactl/internal/player"
	"github.com/arena-engineering/arenactl/internal/runtime"
)

// TestEnv holds a throwaway arenactl state tree plus a mock runtime.
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	Paths   *config.Paths
	Host    *config.HostConfig
	Runtime *runtime.MockRuntime
}

// NewTestEnv creates a test environment rooted in a temp directory.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	paths := config.PathsAt(tmpDir)
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("failed to create state directories: %v", err)
	}

	host, err := config.LoadHostConfig(paths.ConfigDir)
	if err != nil {
		t.Fatalf("failed to load host config: %v", err)
	}

	return &TestEnv{
		T:       t,
		TmpDir:  tmpDir,
		Paths:   paths,
		Host:    host,
		Runtime: runtime.NewMockRuntime(),
	}
}

// BotMeta describes a bot fixture.
type BotMeta struct {
	Name          string `json:"name"`
	Race          string `json:"race"`
	BotType       string `json:"botType"`
	BWAPIVersion  string `json:"bwapiVersion,omitempty"`
	JavaDebugPort int    `json:"javaDebugPort,omitempty"`
}

// CreateBot writes a complete bot fixture (bot.json, AI executable,
// read and write directories) under the bots directory and returns the
// loaded participant.
func (e *TestEnv) CreateBot(meta BotMeta, botFile string) player.Participant {
	e.T.Helper()

	botDir := filepath.Join(e.Paths.BotDir, meta.Name)
	for _, dir := range []string{
		filepath.Join(botDir, "AI"),
		filepath.Join(botDir, "read"),
		filepath.Join(botDir, "write"),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			e.T.Fatalf("failed to create bot directory: %v", err)
		}
	}

	data, err := json.Marshal(meta)
	if err != nil {
		e.T.Fatalf("failed to marshal bot metadata: %v", err)
	}
	if err := os.WriteFile(filepath.Join(botDir, "bot.json"), data, 0644); err != nil {
		e.T.Fatalf("failed to write bot.json: %v", err)
	}
	if err := os.WriteFile(filepath.Join(botDir, "AI", botFile), []byte("binary"), 0644); err != nil {
		e.T.Fatalf("failed to write bot executable: %v", err)
	}

	p, err := player.LoadBot(botDir)
	if err != nil {
		e.T.Fatalf("failed to load bot fixture: %v", err)
	}
	return p
}

// CreateMap writes an empty map file under the maps directory and
// returns its path relative to the map root.
func (e *TestEnv) CreateMap(rel string) string {
	e.T.Helper()

	path := filepath.Join(e.Paths.MapDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.T.Fatalf("failed to create map directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("map"), 0644); err != nil {
		e.T.Fatalf("failed to write map: %v", err)
	}
	return rel
}

// WriteConfig writes config.toml into the config directory.
func (e *TestEnv) WriteConfig(toml string) {
	e.T.Helper()

	path := filepath.Join(e.Paths.ConfigDir, "config.toml")
	if err := os.WriteFile(path, []byte(toml), 0644); err != nil {
		e.T.Fatalf("failed to write config.toml: %v", err)
	}

	host, err := config.LoadHostConfig(e.Paths.ConfigDir)
	if err != nil {
		e.T.Fatalf("failed to reload host config: %v", err)
	}
	e.Host = host
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidateGameName(t *testing.T) {
	valid := []string{"m1", "melee_42", "GAME-2024", "a"}
	for _, name := range valid {
		if err := ValidateGameName(name); err != nil {
			t.Errorf("ValidateGameName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "_lead", "has space", "has/slash", "has.dot",
		"waytoolongwaytoolongwaytoolongwaytoolongwaytoolong"}
	for _, name := range invalid {
		if err := ValidateGameName(name); err == nil {
			t.Errorf("ValidateGameName(%q) = nil, want error", name)
		}
	}
}

func TestLoadHostConfig_Defaults(t *testing.T) {
	cfg, err := LoadHostConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadHostConfig failed: %v", err)
	}

	if cfg.Image != DefaultImage {
		t.Errorf("Image = %q, want %q", cfg.Image, DefaultImage)
	}
	if cfg.Network != DefaultNetwork {
		t.Errorf("Network = %q, want %q", cfg.Network, DefaultNetwork)
	}
	if cfg.VNCBasePort != DefaultVNCBasePort {
		t.Errorf("VNCBasePort = %d, want %d", cfg.VNCBasePort, DefaultVNCBasePort)
	}
}

func TestLoadHostConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
image = "starcraft:custom"
vnc_base_port = 6900
linger_limit_seconds = 45
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadHostConfig(dir)
	if err != nil {
		t.Fatalf("LoadHostConfig failed: %v", err)
	}

	if cfg.Image != "starcraft:custom" {
		t.Errorf("Image = %q, want %q", cfg.Image, "starcraft:custom")
	}
	if cfg.VNCBasePort != 6900 {
		t.Errorf("VNCBasePort = %d, want 6900", cfg.VNCBasePort)
	}
	if cfg.LingerLimit() != 45*time.Second {
		t.Errorf("LingerLimit = %v, want 45s", cfg.LingerLimit())
	}
	// Unset keys keep defaults
	if cfg.Network != DefaultNetwork {
		t.Errorf("Network = %q, want default %q", cfg.Network, DefaultNetwork)
	}
}

func TestLoadHostConfig_EnvOverride(t *testing.T) {
	t.Setenv("ARENACTL_IMAGE", "starcraft:env")
	t.Setenv("ARENACTL_POLL_INTERVAL_SECONDS", "7")

	cfg, err := LoadHostConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadHostConfig failed: %v", err)
	}

	if cfg.Image != "starcraft:env" {
		t.Errorf("Image = %q, want env override", cfg.Image)
	}
	if cfg.PollInterval() != 7*time.Second {
		t.Errorf("PollInterval = %v, want 7s", cfg.PollInterval())
	}
}

func TestLoadHostConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("image = ["), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadHostConfig(dir); err == nil {
		t.Error("LoadHostConfig should fail on malformed TOML")
	}
}

func TestPathsAt(t *testing.T) {
	p := PathsAt("/tmp/arena")

	if p.LogDir != filepath.Join("/tmp/arena", "logs") {
		t.Errorf("LogDir = %q", p.LogDir)
	}
	if p.BWTA2Dir != filepath.Join("/tmp/arena", "bwapi-data", "BWTA2") {
		t.Errorf("BWTA2Dir = %q", p.BWTA2Dir)
	}
}

func TestEnsureDirs(t *testing.T) {
	base := filepath.Join(t.TempDir(), "arena")
	p := PathsAt(base)

	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}

	for _, dir := range []string{p.LogDir, p.MapDir, p.BotDir, p.BWTADir, p.BWTA2Dir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	}
}

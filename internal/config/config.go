package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// gameNameRegex validates match names.
// Names must start with a letter or digit, followed by letters, digits,
// underscores, or hyphens. Maximum length is 63 characters (common
// container name limit), minus room for the ordinal/player suffix.
var gameNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{0,40}$`)

// ValidateGameName checks if a match name is valid. The name is used as
// a namespace prefix for every unit name and log file of the match, so
// it must be safe both as a container name and as a file name.
func ValidateGameName(name string) error {
	if name == "" {
		return fmt.Errorf("game name cannot be empty")
	}

	if !gameNameRegex.MatchString(name) {
		return fmt.Errorf("invalid game name %q: must start with a letter or digit, contain only letters, digits, underscores, or hyphens, and be at most 41 characters", name)
	}

	return nil
}

const (
	// DefaultImage is the game image used for every unit.
	DefaultImage = "starcraft:game"

	// DefaultNetwork is the runtime network units join unless the
	// caller overrides it through extra runtime options.
	DefaultNetwork = "sc_net"

	// DefaultVNCBasePort is the first host port used for headful
	// display forwarding; the participant ordinal is added to it.
	DefaultVNCBasePort = 5900

	// DefaultVNCHost is where viewers connect.
	DefaultVNCHost = "localhost"
)

// HostConfig represents the host configuration from config.toml
type HostConfig struct {
	Image       string `toml:"image" env:"ARENACTL_IMAGE"`
	Network     string `toml:"network" env:"ARENACTL_NETWORK"`
	VNCHost     string `toml:"vnc_host" env:"ARENACTL_VNC_HOST"`
	VNCBasePort int    `toml:"vnc_base_port" env:"ARENACTL_VNC_BASE_PORT"`
	GameSpeed   int    `toml:"game_speed" env:"ARENACTL_GAME_SPEED"`

	// Monitor tuning. Zero means use the built-in defaults.
	SettleDelaySeconds  int `toml:"settle_delay_seconds" env:"ARENACTL_SETTLE_DELAY_SECONDS"`
	LingerLimitSeconds  int `toml:"linger_limit_seconds" env:"ARENACTL_LINGER_LIMIT_SECONDS"`
	PollIntervalSeconds int `toml:"poll_interval_seconds" env:"ARENACTL_POLL_INTERVAL_SECONDS"`
}

// DefaultHostConfig returns a HostConfig with built-in defaults.
func DefaultHostConfig() *HostConfig {
	return &HostConfig{
		Image:       DefaultImage,
		Network:     DefaultNetwork,
		VNCHost:     DefaultVNCHost,
		VNCBasePort: DefaultVNCBasePort,
		GameSpeed:   0,
	}
}

// LoadHostConfig loads config.toml from the config directory, applies
// environment overrides, and fills in defaults. A missing file is not
// an error; defaults and environment apply alone.
func LoadHostConfig(configDir string) (*HostConfig, error) {
	cfg := DefaultHostConfig()

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if cfg.Image == "" {
		cfg.Image = DefaultImage
	}
	if cfg.VNCHost == "" {
		cfg.VNCHost = DefaultVNCHost
	}
	if cfg.VNCBasePort == 0 {
		cfg.VNCBasePort = DefaultVNCBasePort
	}

	return cfg, nil
}

// SettleDelay returns the configured settle delay or zero if unset.
func (c *HostConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelaySeconds) * time.Second
}

// LingerLimit returns the configured lingering-unit limit or zero if unset.
func (c *HostConfig) LingerLimit() time.Duration {
	return time.Duration(c.LingerLimitSeconds) * time.Second
}

// PollInterval returns the configured poll interval or zero if unset.
func (c *HostConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

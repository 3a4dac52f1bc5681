package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arena-engineering/arenactl/internal/config"
	"github.com/arena-engineering/arenactl/internal/errors"
	"github.com/arena-engineering/arenactl/internal/match"
	"github.com/arena-engineering/arenactl/internal/player"
	"github.com/arena-engineering/arenactl/internal/runtime"
)

// getRuntime returns the detected container runtime.
func getRuntime() (runtime.Runtime, error) {
	rt, err := runtime.NewDockerRuntime()
	if err != nil {
		return nil, errors.ConfigError("no container runtime available", err)
	}
	return rt, nil
}

// loadEnvironment resolves the state directory layout and host config.
func loadEnvironment() (*config.Paths, *config.HostConfig, error) {
	paths := config.DefaultPaths()
	if err := paths.EnsureDirs(); err != nil {
		return nil, nil, errors.ConfigError("failed to create state directories", err)
	}

	host, err := config.LoadHostConfig(paths.ConfigDir)
	if err != nil {
		return nil, nil, errors.ConfigError("failed to load host config", err)
	}

	return paths, host, nil
}

// resolveBot loads a bot participant from a bot directory reference,
// either a name under the bots directory or a path to a bot root.
func resolveBot(paths *config.Paths, ref string) (player.Participant, error) {
	dir := ref
	if !filepath.IsAbs(ref) && !strings.ContainsRune(ref, filepath.Separator) {
		dir = filepath.Join(paths.BotDir, ref)
	}

	p, err := player.LoadBot(dir)
	if err != nil {
		return player.Participant{}, errors.ConfigError(fmt.Sprintf("cannot load bot %q", ref), err)
	}
	return p, nil
}

// resolveHuman parses a "name" or "name:race" human participant
// reference. The race defaults to random.
func resolveHuman(ref string) (player.Participant, error) {
	name := ref
	race := player.RaceRandom

	if idx := strings.LastIndex(ref, ":"); idx >= 0 {
		name = ref[:idx]
		parsed, err := player.ParseRace(ref[idx+1:])
		if err != nil {
			return player.Participant{}, errors.ValidationError(err.Error())
		}
		race = parsed
	}

	if name == "" {
		return player.Participant{}, errors.ValidationError("human player name cannot be empty")
	}

	return player.NewHuman(name, race), nil
}

// monitorOptions translates host config monitor tuning into options,
// leaving built-in defaults in place for unset values.
func monitorOptions(host *config.HostConfig) []match.MonitorOption {
	var opts []match.MonitorOption
	if d := host.SettleDelay(); d > 0 {
		opts = append(opts, match.WithSettleDelay(d))
	}
	if d := host.LingerLimit(); d > 0 {
		opts = append(opts, match.WithLingerLimit(d))
	}
	if d := host.PollInterval(); d > 0 {
		opts = append(opts, match.WithPollInterval(d))
	}
	return opts
}

package match

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/arena-engineering/arenactl/internal/player"
	"github.com/arena-engineering/arenactl/internal/runtime"
)

// BuildUnitSpec produces the full launch specification for one
// participant's unit. It is total: all inputs are validated by the
// caller, and resource name collisions are a caller error.
func BuildUnitSpec(p player.Participant, nth, numPlayers int, cfg *MatchConfig) runtime.RunSpec {
	spec := runtime.RunSpec{
		Name:       UnitName(cfg.GameName, nth, p),
		Image:      cfg.Image,
		Privileged: true,
		ExtraArgs:  cfg.ExtraArgs,
	}

	// Shared directories, always mounted read-write.
	spec.Mounts = []runtime.Mount{
		{Source: cfg.LogDir, Target: logTargetDir},
		{Source: cfg.MapDir, Target: mapTargetDir},
		{Source: cfg.BWTADir, Target: bwtaTargetDir},
		{Source: cfg.BWTA2Dir, Target: bwta2TargetDir},
	}

	// Respect a caller-supplied network option; otherwise join the
	// configured match network.
	if !slices.Contains(cfg.ExtraArgs, "--net") {
		spec.Network = cfg.Network
	}

	if !cfg.Headless {
		spec.Ports = append(spec.Ports, runtime.PortMapping{
			HostPort:      cfg.VNCBasePort + nth,
			ContainerPort: displayPort,
		})
	}

	if p.IsBot() {
		// Only the per-match write directory is mounted writable; the
		// bot root is read-only. AI and read data are copied into
		// place inside the unit from the bot root.
		writeDir := filepath.Join(p.WriteDir(), fmt.Sprintf("%s_%d", cfg.GameName, nth))
		spec.EnsureDirs = append(spec.EnsureDirs, writeDir)
		spec.Mounts = append(spec.Mounts,
			runtime.Mount{Source: writeDir, Target: botWriteTargetDir},
			runtime.Mount{Source: p.BotDir, Target: botTargetDir, ReadOnly: true},
		)

		if p.JavaDebugPort != 0 {
			spec.Ports = append(spec.Ports, runtime.PortMapping{
				HostPort:      p.JavaDebugPort,
				ContainerPort: p.JavaDebugPort,
			})
		}
	}

	spec.Env = buildEnv(p, nth, numPlayers, cfg)
	spec.Command = buildCommand(p, nth, cfg)

	return spec
}

// buildEnv assembles the ordered environment block for a unit.
func buildEnv(p player.Participant, nth, numPlayers int, cfg *MatchConfig) []runtime.EnvVar {
	allowUserInput := "0"
	if !p.IsBot() {
		allowUserInput = "1"
	}

	javaDebug := "0"
	if p.IsBot() && p.JavaDebugPort != 0 {
		javaDebug = "1"
	}

	env := []runtime.EnvVar{
		{Key: "PLAYER_NAME", Value: p.Name},
		{Key: "PLAYER_RACE", Value: string(p.Race)},
		{Key: "NTH_PLAYER", Value: strconv.Itoa(nth)},
		{Key: "NUM_PLAYERS", Value: strconv.Itoa(numPlayers)},
		{Key: "GAME_NAME", Value: cfg.GameName},
		{Key: "MAP_NAME", Value: mapTargetDir + "/" + cfg.MapName},
		{Key: "GAME_TYPE", Value: string(cfg.GameType)},
		{Key: "SPEED_OVERRIDE", Value: strconv.Itoa(cfg.GameSpeed)},
		{Key: "HIDE_NAMES", Value: boolFlag(cfg.HideNames)},
		{Key: "DROP_PLAYERS", Value: boolFlag(cfg.DropPlayers)},

		{Key: "TM_LOG_RESULTS", Value: fmt.Sprintf("../logs/%s_%d_results.json", cfg.GameName, nth)},
		{Key: "TM_LOG_FRAMETIMES", Value: fmt.Sprintf("../logs/%s_%d_frames.csv", cfg.GameName, nth)},
		{Key: "TM_SPEED_OVERRIDE", Value: strconv.Itoa(cfg.GameSpeed)},
		{Key: "TM_ALLOW_USER_INPUT", Value: allowUserInput},

		{Key: "EXIT_CODE_REALTIME_OUTED", Value: strconv.Itoa(ExitCodeRealtimeOuted)},

		{Key: "JAVA_DEBUG", Value: javaDebug},
	}

	if p.IsBot() {
		env = append(env,
			runtime.EnvVar{Key: "BOT_FILE", Value: p.BotFile},
			runtime.EnvVar{Key: "BOT_BWAPI", Value: p.BWAPIVersion},
		)
		if p.JavaDebugPort != 0 {
			env = append(env, runtime.EnvVar{Key: "JAVA_DEBUG_PORT", Value: strconv.Itoa(p.JavaDebugPort)})
		}
	}

	if cfg.Timeout != 0 {
		env = append(env, runtime.EnvVar{Key: "PLAY_TIMEOUT", Value: strconv.Itoa(cfg.Timeout)})
	}

	return env
}

// buildCommand selects the entrypoint script and its arguments. In a
// headful match the unit is driven from the viewer; in headless mode
// ordinal 0 hosts the match and everyone else joins it.
func buildCommand(p player.Participant, nth int, cfg *MatchConfig) []string {
	script := playHumanScript
	if p.IsBot() {
		script = playBotScript
	}

	cmd := []string{script}

	if !cfg.Headless {
		return append(cmd, "--headful")
	}

	cmd = append(cmd,
		"--game", cfg.GameName,
		"--name", p.Name,
		"--race", string(p.Race),
		"--lan",
	)

	if nth == 0 {
		cmd = append(cmd, "--host", "--map", mapTargetDir+"/"+cfg.MapName)
	} else {
		cmd = append(cmd, "--join")
	}

	return cmd
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

package match

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arena-engineering/arenactl/internal/player"
	"github.com/arena-engineering/arenactl/internal/runtime"
)

func testConfig() *MatchConfig {
	return &MatchConfig{
		GameName:    "m1",
		MapName:     "sscai/(2)Benzene.scx",
		GameType:    GameTypeMelee,
		Headless:    true,
		GameSpeed:   0,
		LogDir:      "/data/logs",
		MapDir:      "/data/maps",
		BWTADir:     "/data/bwapi-data/BWTA",
		BWTA2Dir:    "/data/bwapi-data/BWTA2",
		VNCBasePort: 5900,
		VNCHost:     "localhost",
		Image:       "starcraft:game",
		Network:     "sc_net",
	}
}

func testBot(name string) player.Participant {
	return player.NewBot(name, player.RaceTerran, "/bots/"+name, name+".jar", "4.1.2")
}

func envMap(spec runtime.RunSpec) map[string]string {
	m := make(map[string]string, len(spec.Env))
	for _, e := range spec.Env {
		m[e.Key] = e.Value
	}
	return m
}

func TestBuildUnitSpec_DistinctNames(t *testing.T) {
	cfg := testConfig()
	players := []player.Participant{
		testBot("alpha"),
		player.NewHuman("Some Human", player.RaceZerg),
		testBot("gamma"),
	}

	seen := map[string]bool{}
	for nth, p := range players {
		spec := BuildUnitSpec(p, nth, len(players), cfg)
		assert.False(t, seen[spec.Name], "duplicate unit name %s", spec.Name)
		seen[spec.Name] = true
		assert.Equal(t, fmt.Sprintf("m1_%d_", nth), spec.Name[:5])
	}

	// Spaces in player names become underscores.
	spec := BuildUnitSpec(players[1], 1, 3, cfg)
	assert.Equal(t, "m1_1_Some_Human", spec.Name)
}

func TestBuildUnitSpec_SharedMounts(t *testing.T) {
	cfg := testConfig()
	spec := BuildUnitSpec(player.NewHuman("h", player.RaceProtoss), 0, 1, cfg)

	require.Len(t, spec.Mounts, 4)
	assert.Equal(t, runtime.Mount{Source: "/data/logs", Target: "/app/logs"}, spec.Mounts[0])
	assert.Equal(t, runtime.Mount{Source: "/data/maps", Target: "/app/sc/maps"}, spec.Mounts[1])
	assert.Equal(t, "/app/sc/bwapi-data/BWTA", spec.Mounts[2].Target)
	assert.Equal(t, "/app/sc/bwapi-data/BWTA2", spec.Mounts[3].Target)
	for _, m := range spec.Mounts {
		assert.False(t, m.ReadOnly, "shared mount %s must be read-write", m.Target)
	}
}

func TestBuildUnitSpec_BotMounts(t *testing.T) {
	cfg := testConfig()
	bot := testBot("alpha")
	spec := BuildUnitSpec(bot, 1, 2, cfg)

	require.Len(t, spec.Mounts, 6)

	writeDir := filepath.Join("/bots/alpha", "write", "m1_1")
	assert.Equal(t, runtime.Mount{Source: writeDir, Target: "/app/sc/bwapi-data/write"}, spec.Mounts[4])
	assert.Equal(t, runtime.Mount{Source: "/bots/alpha", Target: "/app/bot", ReadOnly: true}, spec.Mounts[5])

	// The write dir must be created before launch.
	assert.Contains(t, spec.EnsureDirs, writeDir)
}

func TestBuildUnitSpec_Env(t *testing.T) {
	cfg := testConfig()
	cfg.HideNames = true
	cfg.Timeout = 600
	bot := testBot("alpha")

	env := envMap(BuildUnitSpec(bot, 1, 2, cfg))

	assert.Equal(t, "alpha", env["PLAYER_NAME"])
	assert.Equal(t, "T", env["PLAYER_RACE"])
	assert.Equal(t, "1", env["NTH_PLAYER"])
	assert.Equal(t, "2", env["NUM_PLAYERS"])
	assert.Equal(t, "m1", env["GAME_NAME"])
	assert.Equal(t, "/app/sc/maps/sscai/(2)Benzene.scx", env["MAP_NAME"])
	assert.Equal(t, "MELEE", env["GAME_TYPE"])
	assert.Equal(t, "1", env["HIDE_NAMES"])
	assert.Equal(t, "0", env["DROP_PLAYERS"])
	assert.Equal(t, "../logs/m1_1_results.json", env["TM_LOG_RESULTS"])
	assert.Equal(t, "../logs/m1_1_frames.csv", env["TM_LOG_FRAMETIMES"])
	assert.Equal(t, "0", env["TM_ALLOW_USER_INPUT"])
	assert.Equal(t, "2", env["EXIT_CODE_REALTIME_OUTED"])
	assert.Equal(t, "0", env["JAVA_DEBUG"])
	assert.Equal(t, "alpha.jar", env["BOT_FILE"])
	assert.Equal(t, "4.1.2", env["BOT_BWAPI"])
	assert.Equal(t, "600", env["PLAY_TIMEOUT"])
	assert.NotContains(t, env, "JAVA_DEBUG_PORT")
}

func TestBuildUnitSpec_HumanEnv(t *testing.T) {
	cfg := testConfig()
	env := envMap(BuildUnitSpec(player.NewHuman("h", player.RaceZerg), 0, 2, cfg))

	assert.Equal(t, "1", env["TM_ALLOW_USER_INPUT"])
	assert.NotContains(t, env, "BOT_FILE")
	assert.NotContains(t, env, "BOT_BWAPI")
	assert.NotContains(t, env, "PLAY_TIMEOUT")
}

func TestBuildUnitSpec_JavaDebug(t *testing.T) {
	cfg := testConfig()
	bot := testBot("alpha")
	bot.JavaDebugPort = 8787

	spec := BuildUnitSpec(bot, 0, 1, cfg)
	env := envMap(spec)

	assert.Equal(t, "1", env["JAVA_DEBUG"])
	assert.Equal(t, "8787", env["JAVA_DEBUG_PORT"])
	assert.Contains(t, spec.Ports, runtime.PortMapping{HostPort: 8787, ContainerPort: 8787})
}

func TestBuildUnitSpec_HeadlessEntrypoint(t *testing.T) {
	cfg := testConfig()

	host := BuildUnitSpec(testBot("alpha"), 0, 2, cfg)
	assert.Equal(t, []string{
		"/app/play_bot.sh",
		"--game", "m1",
		"--name", "alpha",
		"--race", "T",
		"--lan",
		"--host", "--map", "/app/sc/maps/sscai/(2)Benzene.scx",
	}, host.Command)

	join := BuildUnitSpec(testBot("beta"), 1, 2, cfg)
	assert.Equal(t, "--join", join.Command[len(join.Command)-1])

	human := BuildUnitSpec(player.NewHuman("h", player.RaceZerg), 1, 2, cfg)
	assert.Equal(t, "/app/play_human.sh", human.Command[0])

	// Headless matches publish no display port.
	assert.Empty(t, host.Ports)
}

func TestBuildUnitSpec_HeadfulEntrypoint(t *testing.T) {
	cfg := testConfig()
	cfg.Headless = false

	spec := BuildUnitSpec(player.NewHuman("h", player.RaceZerg), 1, 2, cfg)

	assert.Equal(t, []string{"/app/play_human.sh", "--headful"}, spec.Command)
	assert.Contains(t, spec.Ports, runtime.PortMapping{HostPort: 5901, ContainerPort: 5900})
}

func TestBuildUnitSpec_NetworkOverride(t *testing.T) {
	cfg := testConfig()
	spec := BuildUnitSpec(testBot("alpha"), 0, 1, cfg)
	assert.Equal(t, "sc_net", spec.Network)

	cfg.ExtraArgs = []string{"--net", "custom_net"}
	spec = BuildUnitSpec(testBot("alpha"), 0, 1, cfg)
	assert.Empty(t, spec.Network, "caller-supplied network option must not be duplicated")
	assert.Equal(t, cfg.ExtraArgs, spec.ExtraArgs)
}

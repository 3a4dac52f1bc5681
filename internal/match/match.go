// Package match implements the multi-unit match lifecycle: building
// per-participant launch specifications, launching units, monitoring
// the match until a terminal state, classifying exit codes, cleaning
// up, and syncing bot data after successful games.
package match

import (
	"fmt"
	"strings"

	"github.com/arena-engineering/arenactl/internal/player"
)

// Paths inside the game image. The entrypoint scripts and the game
// installation expect this exact layout.
const (
	appDir            = "/app"
	logTargetDir      = appDir + "/logs"
	scDir             = appDir + "/sc"
	botTargetDir      = appDir + "/bot"
	mapTargetDir      = scDir + "/maps"
	bwapiDataDir      = scDir + "/bwapi-data"
	bwtaTargetDir     = bwapiDataDir + "/BWTA"
	bwta2TargetDir    = bwapiDataDir + "/BWTA2"
	botWriteTargetDir = bwapiDataDir + "/write"

	playBotScript   = appDir + "/play_bot.sh"
	playHumanScript = appDir + "/play_human.sh"

	// displayPort is the fixed internal display port of every unit.
	displayPort = 5900
)

// Reserved exit codes communicated through the process exit channel.
const (
	// ExitCodeRealtimeOuted is the sentinel a unit reports when the
	// match timed out in real time. Passed into every unit as
	// EXIT_CODE_REALTIME_OUTED.
	ExitCodeRealtimeOuted = 2

	// exitCodeUnitError is the generic error exit code.
	exitCodeUnitError = 1
)

// GameType is the match-type mode.
type GameType string

const (
	GameTypeMelee          GameType = "MELEE"
	GameTypeFreeForAll     GameType = "FREE_FOR_ALL"
	GameTypeUseMapSettings GameType = "USE_MAP_SETTINGS"
)

// ParseGameType accepts the wire value or a relaxed spelling.
func ParseGameType(s string) (GameType, error) {
	switch strings.ToUpper(strings.ReplaceAll(s, "-", "_")) {
	case "MELEE":
		return GameTypeMelee, nil
	case "FREE_FOR_ALL", "FFA":
		return GameTypeFreeForAll, nil
	case "USE_MAP_SETTINGS", "UMS":
		return GameTypeUseMapSettings, nil
	}
	return "", fmt.Errorf("unknown game type %q", s)
}

// MatchConfig is the shared configuration for a whole match.
// Constructed once per match, read-only thereafter.
type MatchConfig struct {
	// GameName namespaces every derived resource name and log file.
	GameName string

	// MapName is relative to the map directory.
	MapName string

	GameType    GameType
	Headless    bool
	GameSpeed   int
	Timeout     int // seconds; 0 means no play timeout
	HideNames   bool
	DropPlayers bool

	// Shared host directories mounted into every unit.
	LogDir   string
	MapDir   string
	BWTADir  string
	BWTA2Dir string

	// Display viewer endpoint for headful matches. The participant
	// ordinal is added to VNCBasePort.
	VNCBasePort int
	VNCHost     string

	// Image is the game image identifier.
	Image string

	// Network is the runtime network units join. Ignored when
	// ExtraArgs already carries a network option.
	Network string

	// ExtraArgs are extra runtime options, passed verbatim.
	ExtraArgs []string
}

// Unit is one running execution unit of a match. Exactly one Unit
// exists per participant once launch succeeds. The identifier is
// immutable once assigned; the exit code is set at most once.
type Unit struct {
	// Name is the unit resource name ({game}_{nth}_{player}).
	Name string

	// ID is the runtime-assigned identifier.
	ID string

	// Player references the owning participant. The unit does not own it.
	Player *player.Participant

	// ExitCode is present only after termination.
	ExitCode *int
}

// UnitName derives the resource name for a participant at an ordinal.
// Spaces in player names are replaced so the name stays a valid
// container name.
func UnitName(game string, nth int, p player.Participant) string {
	return fmt.Sprintf("%s_%d_%s", game, nth, strings.ReplaceAll(p.Name, " ", "_"))
}

// Package player defines match participants.
//
// A Participant is a tagged variant over humans and bots: shared fields
// live on the struct, bot-only fields are meaningful when Kind is
// KindBot. The two places that branch on participant kind (unit spec
// building and entrypoint selection) switch on Kind.
package player

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind tags the participant variant.
type Kind int

const (
	KindHuman Kind = iota
	KindBot
)

func (k Kind) String() string {
	if k == KindBot {
		return "bot"
	}
	return "human"
}

// Race is the chosen in-game faction.
type Race string

const (
	RaceTerran  Race = "T"
	RaceZerg    Race = "Z"
	RaceProtoss Race = "P"
	RaceRandom  Race = "R"
)

// ParseRace accepts either the single-letter code or the full name.
func ParseRace(s string) (Race, error) {
	switch strings.ToUpper(s) {
	case "T", "TERRAN":
		return RaceTerran, nil
	case "Z", "ZERG":
		return RaceZerg, nil
	case "P", "PROTOSS":
		return RaceProtoss, nil
	case "R", "RANDOM":
		return RaceRandom, nil
	}
	return "", fmt.Errorf("unknown race %q", s)
}

// Participant is one player in a match. Immutable once constructed;
// the caller owns it for the duration of the match.
type Participant struct {
	Kind Kind
	Name string
	Race Race

	// Bot-only fields.

	// BotDir is the bot's private root directory. It holds the AI/,
	// read/ and write/ subdirectories.
	BotDir string

	// BotFile is the bot executable identifier inside BotDir/AI.
	BotFile string

	// BWAPIVersion is the runtime-library version tag the image must
	// load for this bot.
	BWAPIVersion string

	// JavaDebugPort enables remote debugging when nonzero. The port is
	// also published from the unit.
	JavaDebugPort int
}

// NewHuman returns a human participant.
func NewHuman(name string, race Race) Participant {
	return Participant{Kind: KindHuman, Name: name, Race: race}
}

// NewBot returns a bot participant rooted at botDir.
func NewBot(name string, race Race, botDir, botFile, bwapiVersion string) Participant {
	return Participant{
		Kind:         KindBot,
		Name:         name,
		Race:         race,
		BotDir:       botDir,
		BotFile:      botFile,
		BWAPIVersion: bwapiVersion,
	}
}

func (p Participant) String() string {
	return fmt.Sprintf("%s:%s (%s)", p.Kind, p.Name, p.Race)
}

// IsBot reports whether the participant is automated.
func (p Participant) IsBot() bool {
	return p.Kind == KindBot
}

// ReadDir is the bot's persistent read directory.
func (p Participant) ReadDir() string {
	return filepath.Join(p.BotDir, "read")
}

// WriteDir is the parent of the per-match private write directories.
func (p Participant) WriteDir() string {
	return filepath.Join(p.BotDir, "write")
}

// AIDir holds the bot executable and support files.
func (p Participant) AIDir() string {
	return filepath.Join(p.BotDir, "AI")
}

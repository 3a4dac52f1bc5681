package player

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// botJSON mirrors the bot.json metadata file kept at a bot root.
type botJSON struct {
	Name          string `json:"name"`
	Race          string `json:"race"`
	BotType       string `json:"botType"`
	BWAPIVersion  string `json:"bwapiVersion"`
	JavaDebugPort int    `json:"javaDebugPort"`
}

// DefaultBWAPIVersion is assumed when bot.json does not pin one.
const DefaultBWAPIVersion = "4.1.2"

// botTypeExtensions maps the declared bot type to the executable file
// extension expected in the AI directory.
var botTypeExtensions = map[string]string{
	"AI_MODULE":   ".dll",
	"EXE":         ".exe",
	"JAVA_JAR":    ".jar",
	"JAVA_MIRROR": ".jar",
}

// LoadBot builds a bot participant from the bot.json metadata and AI
// directory found under botDir.
func LoadBot(botDir string) (Participant, error) {
	data, err := os.ReadFile(filepath.Join(botDir, "bot.json"))
	if err != nil {
		return Participant{}, fmt.Errorf("cannot read bot metadata in %s: %w", botDir, err)
	}

	var meta botJSON
	if err := json.Unmarshal(data, &meta); err != nil {
		return Participant{}, fmt.Errorf("invalid bot.json in %s: %w", botDir, err)
	}
	if meta.Name == "" {
		return Participant{}, fmt.Errorf("bot.json in %s has no name", botDir)
	}

	race, err := ParseRace(meta.Race)
	if err != nil {
		return Participant{}, fmt.Errorf("bot %s: %w", meta.Name, err)
	}

	ext, ok := botTypeExtensions[meta.BotType]
	if !ok {
		return Participant{}, fmt.Errorf("bot %s has unknown bot type %q", meta.Name, meta.BotType)
	}

	botFile, err := findBotFile(filepath.Join(botDir, "AI"), ext)
	if err != nil {
		return Participant{}, fmt.Errorf("bot %s: %w", meta.Name, err)
	}

	version := meta.BWAPIVersion
	if version == "" {
		version = DefaultBWAPIVersion
	}

	p := NewBot(meta.Name, race, botDir, botFile, version)
	p.JavaDebugPort = meta.JavaDebugPort
	return p, nil
}

// findBotFile returns the name of the single file in aiDir with the
// wanted extension.
func findBotFile(aiDir, ext string) (string, error) {
	entries, err := os.ReadDir(aiDir)
	if err != nil {
		return "", fmt.Errorf("cannot read AI directory: %w", err)
	}

	var matches []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
			matches = append(matches, e.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s file in %s", ext, aiDir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("multiple %s files in %s: %s", ext, aiDir, strings.Join(matches, ", "))
	}
}

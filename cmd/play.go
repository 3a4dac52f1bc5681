package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arena-engineering/arenactl/internal/config"
	"github.com/arena-engineering/arenactl/internal/errors"
	"github.com/arena-engineering/arenactl/internal/logging"
	"github.com/arena-engineering/arenactl/internal/match"
	"github.com/arena-engineering/arenactl/internal/player"
	"github.com/arena-engineering/arenactl/internal/runtime"
	"github.com/arena-engineering/arenactl/internal/tui"
)

var (
	playBots          []string
	playHumans        []string
	playMap           string
	playGameName      string
	playGameType      string
	playGameSpeed     int
	playTimeout       int
	playHeadful       bool
	playHideNames     bool
	playDropPlayers   bool
	playReadOverwrite bool
	playShowAll       bool
	playPlain         bool
	playRuntimeOpts   []string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Play one match between the given participants.

Each --bot names a bot directory (under the bots state directory, or a
path to a bot root with a bot.json). Each --human adds a human player as
"name" or "name:race". Participant order matters: the first participant
hosts the match.

Examples:
  arenactl play --bot PurpleWave --bot Steamhammer
  arenactl play --human myname:T --bot Steamhammer --headful`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringArrayVarP(&playBots, "bot", "b", nil, "Bot participant (repeatable)")
	playCmd.Flags().StringArrayVarP(&playHumans, "human", "u", nil, "Human participant as name[:race] (repeatable)")
	playCmd.Flags().StringVarP(&playMap, "map", "m", "sscai/(2)Benzene.scx", "Map, relative to the map directory")
	playCmd.Flags().StringVar(&playGameName, "game-name", "", "Match name (default: generated)")
	playCmd.Flags().StringVar(&playGameType, "game-type", string(match.GameTypeFreeForAll), "Game type (MELEE, FREE_FOR_ALL, USE_MAP_SETTINGS)")
	playCmd.Flags().IntVar(&playGameSpeed, "game-speed", 0, "Game speed override (-1 for unlimited)")
	playCmd.Flags().IntVar(&playTimeout, "timeout", 0, "Play timeout in seconds (0: none)")
	playCmd.Flags().BoolVar(&playHeadful, "headful", false, "Run with a display and open a VNC viewer")
	playCmd.Flags().BoolVar(&playHideNames, "hide-names", false, "Hide player names in game")
	playCmd.Flags().BoolVar(&playDropPlayers, "drop-players", false, "Drop crashed players from the game")
	playCmd.Flags().BoolVar(&playReadOverwrite, "read-overwrite", false, "Overwrite bot read data with write data after the match")
	playCmd.Flags().BoolVar(&playShowAll, "show-all", false, "Open a viewer for every participant (headful only)")
	playCmd.Flags().BoolVar(&playPlain, "plain", false, "Disable the interactive progress display")
	playCmd.Flags().StringArrayVar(&playRuntimeOpts, "opt", nil, "Extra container runtime option (repeatable)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	paths, host, err := loadEnvironment()
	if err != nil {
		return err
	}

	gameName := playGameName
	if gameName == "" {
		gameName = "GAME_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	if err := config.ValidateGameName(gameName); err != nil {
		return errors.ValidationError(err.Error())
	}

	gameType, err := match.ParseGameType(playGameType)
	if err != nil {
		return errors.ValidationError(err.Error())
	}

	players, err := assemblePlayers(paths)
	if err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(paths.MapDir, playMap)); err != nil {
		return errors.ValidationError(fmt.Sprintf("map %q not found under %s", playMap, paths.MapDir))
	}

	gameSpeed := playGameSpeed
	if !cmd.Flags().Changed("game-speed") {
		gameSpeed = host.GameSpeed
	}

	cfg := &match.MatchConfig{
		GameName:    gameName,
		MapName:     playMap,
		GameType:    gameType,
		Headless:    !playHeadful,
		GameSpeed:   gameSpeed,
		Timeout:     playTimeout,
		HideNames:   playHideNames,
		DropPlayers: playDropPlayers,
		LogDir:      paths.LogDir,
		MapDir:      paths.MapDir,
		BWTADir:     paths.BWTADir,
		BWTA2Dir:    paths.BWTA2Dir,
		VNCBasePort: host.VNCBasePort,
		VNCHost:     host.VNCHost,
		Image:       host.Image,
		Network:     host.Network,
		ExtraArgs:   playRuntimeOpts,
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}

	logInfo("Playing %s on %s with %d players", gameName, playMap, len(players))

	result, err := playMatch(cmd.Context(), rt, host, players, cfg, match.RunOptions{
		ShowAll:       playShowAll,
		ReadOverwrite: playReadOverwrite,
	})

	if result != nil {
		for _, unit := range result.Units {
			if unit.ExitCode != nil {
				logInfo("  %s exited with code %d", unit.Name, *unit.ExitCode)
			}
		}
	}
	if err != nil {
		return err
	}

	logSuccess("Match %s finished: %s", gameName, result.Outcome)
	return nil
}

// playMatch runs the match, either plainly or behind the interactive
// progress view.
func playMatch(ctx context.Context, rt runtime.Runtime, host *config.HostConfig, players []player.Participant, cfg *match.MatchConfig, opts match.RunOptions) (*match.Result, error) {
	monitorOpts := monitorOptions(host)

	if playPlain || jsonOutput || verbose {
		runner := match.NewRunner(rt, match.WithMonitor(match.NewMonitor(rt, monitorOpts...)))
		return runner.Run(ctx, players, cfg, opts)
	}

	progress := tui.NewProgress(cfg.GameName)
	monitorOpts = append(monitorOpts, match.WithStatusFunc(progress.StatusFunc()))
	runner := match.NewRunner(rt, match.WithMonitor(match.NewMonitor(rt, monitorOpts...)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		result *match.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := runner.Run(ctx, players, cfg, opts)
		progress.Done(err)
		done <- outcome{result, err}
	}()

	aborted, uiErr := progress.Run()
	if uiErr != nil {
		logging.Warn("progress display failed", "error", uiErr)
	}
	if aborted {
		logWarning("Aborting match %s", cfg.GameName)
		cancel()
	}

	o := <-done
	return o.result, o.err
}

// assemblePlayers builds the participant list in ordinal order: humans
// first, then bots, mirroring the order the flags were given in.
func assemblePlayers(paths *config.Paths) ([]player.Participant, error) {
	var players []player.Participant

	for _, ref := range playHumans {
		p, err := resolveHuman(ref)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	for _, ref := range playBots {
		p, err := resolveBot(paths, ref)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	if len(players) == 0 {
		return nil, errors.ValidationError("at least one player must be specified with --bot or --human")
	}

	return players, nil
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arena-engineering/arenactl/internal/artifacts"
	"github.com/arena-engineering/arenactl/internal/config"
	"github.com/arena-engineering/arenactl/internal/errors"
	"github.com/arena-engineering/arenactl/internal/logging"
	"github.com/arena-engineering/arenactl/internal/match"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <game>",
	Short: "Remove a match's units and artifacts",
	Long: `Remove all units of the named match, stopped ones included, along
with its log, result, frame-timing and replay files.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	game := args[0]
	if err := config.ValidateGameName(game); err != nil {
		return errors.ValidationError(err.Error())
	}

	paths, _, err := loadEnvironment()
	if err != nil {
		return err
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}

	units, err := rt.ListAll(cmd.Context(), game)
	if err != nil {
		return errors.RuntimeQueryFailure("list", err)
	}
	match.Cleanup(cmd.Context(), rt, units)

	removed := 0
	for _, file := range artifacts.Find(paths.LogDir, paths.MapDir, game) {
		if err := os.Remove(file); err != nil {
			logging.Warn("could not remove artifact", "file", file, "error", err)
			continue
		}
		removed++
	}

	logSuccess("Removed %d units and %d artifacts for %s", len(units), removed, game)
	return nil
}

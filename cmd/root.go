package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arena-engineering/arenactl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "StarCraft: Brood War match orchestration CLI",
	Long: `arenactl plays multi-player StarCraft: Brood War matches where every
participant (bot or human) runs in its own container.

Each match unit is a container with:
  - Shared log, map and terrain-cache directories (read-write)
  - The bot root mounted read-only plus a private write directory
  - Headful display forwarded over VNC`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)

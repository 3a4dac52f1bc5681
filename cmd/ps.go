package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var psGame string

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List match units",
	RunE:  runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)
	psCmd.Flags().StringVarP(&psGame, "game", "g", "", "Only show units of this match")
}

func runPs(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime()
	if err != nil {
		return err
	}

	all, err := rt.ListAll(cmd.Context(), psGame)
	if err != nil {
		return fmt.Errorf("failed to list units: %w", err)
	}

	if len(all) == 0 {
		logInfo("No match units found. Play a match with: arenactl play --bot <name> --bot <name>")
		return nil
	}

	running, err := rt.ListRunning(cmd.Context(), psGame)
	if err != nil {
		return fmt.Errorf("failed to list running units: %w", err)
	}
	isRunning := make(map[string]bool, len(running))
	for _, name := range running {
		isRunning[name] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UNIT\tSTATUS")
	fmt.Fprintln(w, "----\t------")

	for _, name := range all {
		status := "● stopped"
		if isRunning[name] {
			status = "✓ running"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, status)
	}

	return w.Flush()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the loaded levels",
	Long: `Shows the levels in play order, from --levels or the embedded campaign.

Examples:
  arkanoid levels
  arkanoid levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	set, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	all := set.Levels()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range all {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-20s  %s\n", "#", maxIDLen, "ID", "Name", "Bricks")
	fmt.Printf("  %-3s  %-*s  %-20s  %s\n", "-", maxIDLen, "--", "----", "------")

	for i, l := range all {
		fmt.Printf("  %-3d  %-*s  %-20s  %d\n", i+1, maxIDLen, l.ID, l.Name, l.Breakable())
	}

	fmt.Println()
	fmt.Println("Run 'arkanoid play' to start from level 1.")
}

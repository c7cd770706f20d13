package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Long: `List save slots written with Ctrl+S during play.

Examples:
  arkanoid saves
  arkanoid saves delete quicksave`,
	Args: cobra.NoArgs,
	Run:  runSaves,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	Run:   runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesDeleteCmd)
}

func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runSaves(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	saves, err := store.ListSaves()
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error listing saves: %v\n", err)
		os.Exit(1)
	}

	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return
	}

	maxNameLen := 4 // "Slot" header
	for _, s := range saves {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Printf("  %-*s  %-8s  %-5s  %-5s  %s\n", maxNameLen, "Slot", "Score", "Level", "Lives", "Saved")
	fmt.Printf("  %-*s  %-8s  %-5s  %-5s  %s\n", maxNameLen, "----", "-----", "-----", "-----", "-----")
	for _, s := range saves {
		fmt.Printf("  %-*s  %-8d  %-5d  %-5d  %s\n",
			maxNameLen, s.Name, s.Score, s.Level, s.Lives, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'arkanoid play --resume <slot>' to continue a game.")
}

func runSavesDelete(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	if err := store.DeleteSave(args[0]); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted save %q\n", args[0])
}

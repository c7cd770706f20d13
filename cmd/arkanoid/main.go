// arkanoid is a terminal brick breaker built on a deterministic simulation.
//
// Usage:
//
//	arkanoid play               - Play the campaign
//	arkanoid levels             - List the loaded levels
//	arkanoid scores             - Show high scores
//	arkanoid saves              - List or delete save slots
//	arkanoid serve              - Start SSH server for remote play
//	arkanoid simulate           - Run autopilot sessions and export telemetry
//
// Global flags:
//
//	--config <path>      - Game config YAML (default: search path, then embedded)
//	--difficulty <name>  - easy, normal or hard
//	--levels <dir>       - Level directory (default: embedded campaign)
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arkanoid/arkanoid.db)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-arkanoid/internal/config"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/levels"
	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "arkanoid",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arkanoid",
	Short: "Arkanoid - break bricks in your terminal",
	Long: `Arkanoid is a terminal brick breaker with power-ups, enemies,
save slots and a shared high score table.

Available commands:
  play      - Play the campaign
  levels    - Show the loaded levels
  scores    - View high scores and save slots
  saves     - List or delete save slots
  serve     - Start SSH server for remote play
  simulate  - Run autopilot sessions and export telemetry

Examples:
  arkanoid play
  arkanoid play --difficulty hard --seed 42
  arkanoid play --resume quicksave
  arkanoid serve --ssh :2222
  arkanoid simulate --seeds 50 --out runs.parquet`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: embedded campaign)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arkanoid/arkanoid.db", "Path to scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadGameConfig loads the config and applies the difficulty flag.
func loadGameConfig() (config.ArkanoidConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.ArkanoidConfig{}, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.ArkanoidConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// loadLevels loads the level set named by --levels.
func loadLevels() (*levels.Set, error) {
	set, err := levels.Load(flagLevels)
	if err != nil {
		return nil, fmt.Errorf("cannot load levels: %w", err)
	}
	return set, nil
}

// openStore opens the database, or returns nil with a warning so play
// still works without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, scores and saves disabled", "err", err)
		return nil
	}
	return store
}

// quietLogger redirects the root logger away from the terminal while a
// full-screen program owns it. The returned func restores it.
func quietLogger(path string) (func(), error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-arkanoid/internal/core"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid"
	"github.com/vovakirdan/tui-arkanoid/internal/games/arkanoid/sim"
	"github.com/vovakirdan/tui-arkanoid/internal/platform/sound"
	"github.com/vovakirdan/tui-arkanoid/internal/platform/spectate"
	"github.com/vovakirdan/tui-arkanoid/internal/platform/tui"
	"github.com/vovakirdan/tui-arkanoid/internal/storage"
)

var (
	flagResume   string
	flagSlot     string
	flagSpectate string
	flagSound    bool
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start playing from the first level, or resume a saved game.

Controls:
  Left/Right, A/D  - Move paddle
  Space/Up/W       - Launch ball
  F/X              - Fire laser
  Enter            - Start level / continue
  P/Esc            - Pause
  Ctrl+S           - Save to slot
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives, wider paddle, slower launch
  normal - Config defaults
  hard   - Fewer lives, narrower paddle, faster launch

Examples:
  arkanoid play
  arkanoid play --difficulty easy
  arkanoid play --resume quicksave
  arkanoid play --levels ./my-levels --seed 7
  arkanoid play --spectate :8080 --sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagResume, "resume", "", "Resume the named save slot")
	playCmd.Flags().StringVar(&flagSlot, "slot", tui.DefaultSaveSlot, "Save slot written by Ctrl+S")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket event feed on this address (e.g. :8080)")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	set, err := loadLevels()
	if err != nil {
		return err
	}

	// Get terminal size early so the first frame fits
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	restore, err := quietLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer restore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks := []sim.EventSink{arkanoid.LogSink(logger)}

	if flagSpectate != "" {
		hub := spectate.NewHub(logger.WithPrefix("spectate"))
		sinks = append(sinks, hub.Sink())
		go func() {
			if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
	}

	if flagSound {
		player := sound.NewPlayer()
		if err := player.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", "err", err)
		} else {
			defer player.Close()
			sinks = append(sinks, player.Sink())
		}
	}

	game, err := arkanoid.New(cfg, set, sim.Fanout(sinks...), arkanoid.WithLevelNames(set.Name))
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	opts := []tui.Option{tui.WithSaveSlot(flagSlot), tui.WithLogger(logger)}
	if flagResume != "" {
		if err := resume(game, store, rt); err != nil {
			return err
		}
		opts = append(opts, tui.WithoutReset())
	}

	return tui.Run(game, store, rt, opts...)
}

// resume loads a save slot into game. The help line takes one row, so the
// game is sized the way the TUI would size it.
func resume(game *arkanoid.Game, store *storage.Store, rt core.RuntimeConfig) error {
	if store == nil {
		return errors.New("cannot resume without a database")
	}
	snap, err := store.LoadSnapshot(flagResume)
	if err != nil {
		return err
	}
	rt.ScreenH = max(rt.ScreenH-1, 1)
	game.Reset(rt)
	if err := game.Restore(snap); err != nil {
		return fmt.Errorf("cannot resume %q: %w", flagResume, err)
	}
	logger.Info("resumed save", "slot", flagResume, "level", snap.Level+1, "score", snap.Score)
	return nil
}

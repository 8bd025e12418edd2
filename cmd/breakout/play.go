package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-breakout/internal/breakout"
	"github.com/vovakirdan/tile-breakout/internal/gfx/soft"
	"github.com/vovakirdan/tile-breakout/internal/platform/tui"
	"github.com/vovakirdan/tile-breakout/internal/resource"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in the current terminal. The scene is rendered in
software and drawn with half-block characters, two pixels per cell.

Controls:
  Left/A     - Move paddle left
  Right/D    - Move paddle right
  Ctrl+S     - Save a screenshot to ~/.breakout/screenshots
  Esc/Q      - Quit

Examples:
  breakout play
  breakout play --level 2
  breakout play --difficulty hard --log-file breakout.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start on, 1-based (0 = config levels.start)")
}

func runPlay(_ *cobra.Command, _ []string) {
	e, err := loadEnv(false)
	if err != nil {
		fail(err)
	}
	defer e.close()

	// Get terminal size
	cols, rows := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cols, rows = w, h
	}

	fw, fh := tui.FrameSize(cols, rows)
	game, backend, err := newSoftGame(e, fw, fh)
	if err != nil {
		fail(err)
	}

	runErr := tui.Run(game, backend, tui.Options{
		TickRate: e.cfg.Runtime.TickRate,
		Hold:     time.Duration(e.cfg.Input.HoldMillis) * time.Millisecond,
		Logger:   e.logger,
	})
	if runErr != nil {
		e.close()
		fail(runErr)
	}
}

// newSoftGame builds a software backend of width x height pixels, a cache
// over the environment's resources and a game laid out at the configured
// window size.
func newSoftGame(e *env, width, height int) (*breakout.Game, *soft.Backend, error) {
	backend := soft.New(max(width, 1), max(height, 1))
	cache := resource.New(backend, e.fsys,
		resource.WithLogger(e.logger),
		resource.WithStrictShaders(!e.cfg.Material.LenientShaders),
	)
	game, err := breakout.NewGame(e.cfg.Window.Width, e.cfg.Window.Height, cache, e.cfg)
	if err != nil {
		return nil, nil, err
	}
	return game, backend, nil
}

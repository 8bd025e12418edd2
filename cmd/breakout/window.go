//go:build glfw

package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-breakout/internal/breakout"
	"github.com/vovakirdan/tile-breakout/internal/platform/desktop"
	"github.com/vovakirdan/tile-breakout/internal/resource"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in an OpenGL window",
	Long: `Open a window with an OpenGL 3.3 core context and run the game on the
GPU backend.

Controls:
  Left/A     - Move paddle left
  Right/D    - Move paddle right
  Esc        - Close the window`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start on, 1-based (0 = config levels.start)")
	rootCmd.AddCommand(windowCmd)
}

func runWindow(_ *cobra.Command, _ []string) {
	e, err := loadEnv(true)
	if err != nil {
		fail(err)
	}
	defer e.close()

	w := e.cfg.Window
	win, err := desktop.Open(w.Width, w.Height, w.Title, e.logger)
	if err != nil {
		fail(err)
	}
	defer win.Close()

	cache := resource.New(win.Backend(), e.fsys,
		resource.WithLogger(e.logger),
		resource.WithStrictShaders(!e.cfg.Material.LenientShaders),
	)
	game, err := breakout.NewGame(w.Width, w.Height, cache, e.cfg)
	if err != nil {
		win.Close()
		fail(err)
	}

	if err := win.Run(game); err != nil {
		win.Close()
		fail(err)
	}
}

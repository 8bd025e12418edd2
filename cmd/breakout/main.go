// breakout runs the tile-breakout core in a terminal, over SSH or in a window.
//
// Usage:
//
//	breakout play                 - Play in this terminal
//	breakout serve                - Start SSH server for remote play
//	breakout levels list          - List level files
//	breakout levels validate      - Check level files for errors
//	breakout levels preview <n>   - Show a colored preview of a level
//	breakout assets               - Load every resource headless and report
//	breakout window               - Play in an OpenGL window (build tag glfw)
//
// Global flags:
//
//	--config <path>      - Config YAML (default search: ~/.breakout, ./configs, embedded)
//	--resources <dir>    - Resource directory (default: embedded resources)
//	--difficulty <name>  - Paddle preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-breakout/internal/config"
	"github.com/vovakirdan/tile-breakout/resources"
)

var (
	// Global flags
	flagConfig     string
	flagResources  string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Tile breakout - levels, sprites and a paddle in your terminal",
	Long: `Tile breakout loads brick levels from text files, uploads sprite
textures and shaders into a resource cache and renders the scene every frame.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  levels   - List, validate and preview level files
  assets   - Load all resources and report what was cached

Examples:
  breakout play
  breakout play --difficulty easy
  breakout serve --ssh :2222
  breakout levels preview 2
  breakout assets --resources ./resources`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagResources, "resources", "", "Resource directory (empty = embedded)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides runtime.log_level)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(assetsCmd)
}

// env is what every command needs: validated config, resource filesystem and logger.
type env struct {
	cfg    config.Config
	fsys   fs.FS
	logger *log.Logger
	close  func()
}

// loadEnv resolves config, difficulty and resources. stderrLogs selects
// stderr as the log sink when no --log-file is given; otherwise logs are
// discarded so they do not draw over the game screen.
func loadEnv(stderrLogs bool) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	if err := prepareConfig(&cfg, preset, flagLevel); err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(cfg, stderrLogs)
	if err != nil {
		return nil, err
	}

	var fsys fs.FS = resources.FS
	if flagResources != "" {
		info, statErr := os.Stat(flagResources)
		if statErr != nil {
			closeLog()
			return nil, fmt.Errorf("resources: %w", statErr)
		}
		if !info.IsDir() {
			closeLog()
			return nil, fmt.Errorf("resources: %s is not a directory", flagResources)
		}
		fsys = os.DirFS(flagResources)
	}

	logger.Debug("environment ready",
		"config", flagConfig,
		"resources", flagResources,
		"difficulty", string(preset),
	)
	return &env{cfg: cfg, fsys: fsys, logger: logger, close: closeLog}, nil
}

// prepareConfig applies the difficulty preset and the 1-based start level,
// loading at least that many levels, then validates the result. A level of 0
// keeps levels.start.
func prepareConfig(cfg *config.Config, preset config.DifficultyPreset, level int) error {
	config.ApplyPreset(cfg, preset)
	if level > 0 {
		cfg.Levels.Start = level - 1
		cfg.Levels.Count = max(cfg.Levels.Count, level)
	}
	return cfg.Validate()
}

func newLogger(cfg config.Config, stderrLogs bool) (*log.Logger, func(), error) {
	levelName := cfg.Runtime.LogLevel
	if flagLogLevel != "" {
		levelName = flagLogLevel
	}
	if levelName == "" {
		levelName = "info"
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("log file: %w", openErr)
		}
		w = f
		closeFn = func() { f.Close() }
	case stderrLogs:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
		Level:           level,
	})
	return logger, closeFn, nil
}

// fail prints err the way every command reports fatal errors and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

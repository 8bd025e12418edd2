package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-breakout/internal/breakout"
	"github.com/vovakirdan/tile-breakout/internal/platform/tui"
)

var flagMono bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List, validate and preview level files",
	Long: `Inspect the level files in the configured levels directory.

Level files are grids of digits, one row per line: 0 is empty, 1 is a solid
brick and 2-9 are destructible bricks.

Examples:
  breakout levels list
  breakout levels validate
  breakout levels preview 1
  breakout levels preview --resources ./resources 3`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List level files with their size and brick counts",
	Args:  cobra.NoArgs,
	Run:   runLevelsList,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check level files and exit non-zero on the first bad one",
	Long: `Parse every level file in the levels directory, or the given files
relative to the resource root, and report the first error of each.`,
	Run: runLevelsValidate,
}

var levelsPreviewCmd = &cobra.Command{
	Use:   "preview <n>",
	Short: "Show a colored preview of level n",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsPreview,
}

func init() {
	levelsCmd.PersistentFlags().BoolVar(&flagMono, "mono", false, "Draw without colors")
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsValidateCmd)
	levelsCmd.AddCommand(levelsPreviewCmd)
}

func levelTheme() tui.LevelTheme {
	if flagMono {
		return tui.MonochromeLevelTheme()
	}
	return tui.DefaultLevelTheme()
}

// levelFiles returns the .lvl files in dir, in level order.
func levelFiles(fsys fs.FS, dir string) ([]string, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.lvl"))
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		ni, iok := levelNumber(matches[i])
		nj, jok := levelNumber(matches[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		return matches[i] < matches[j]
	})
	return matches, nil
}

func levelNumber(p string) (int, bool) {
	base := strings.TrimSuffix(path.Base(p), ".lvl")
	n, err := strconv.Atoi(strings.TrimPrefix(base, "level_"))
	return n, err == nil
}

func parseLevelFile(fsys fs.FS, p string) ([][]int, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return breakout.Parse(f, p)
}

func runLevelsList(_ *cobra.Command, _ []string) {
	e, err := loadEnv(true)
	if err != nil {
		fail(err)
	}
	defer e.close()

	files, err := levelFiles(e.fsys, e.cfg.Levels.Dir)
	if err != nil {
		fail(err)
	}
	if len(files) == 0 {
		fmt.Printf("No level files in %s.\n", e.cfg.Levels.Dir)
		return
	}

	rows := make([]tui.LevelRow, 0, len(files))
	for _, p := range files {
		grid, parseErr := parseLevelFile(e.fsys, p)
		row := tui.LevelRow{Path: p, Err: parseErr}
		if parseErr == nil {
			row.Stats = breakout.Stats(grid)
		}
		rows = append(rows, row)
	}

	fmt.Println(tui.RenderLevelTable(rows, levelTheme()))
	fmt.Println()
	fmt.Printf("The game loads %d level(s) starting at %s.\n", e.cfg.LevelCount(), e.cfg.LevelPath(e.cfg.Levels.Start+1))
}

func runLevelsValidate(_ *cobra.Command, args []string) {
	e, err := loadEnv(true)
	if err != nil {
		fail(err)
	}
	defer e.close()

	files := args
	if len(files) == 0 {
		files, err = levelFiles(e.fsys, e.cfg.Levels.Dir)
		if err != nil {
			fail(err)
		}
	}

	theme := levelTheme()
	var errs []error
	for _, p := range files {
		if _, parseErr := parseLevelFile(e.fsys, p); parseErr != nil {
			errs = append(errs, parseErr)
			fmt.Println(theme.Error.Render("FAIL " + parseErr.Error()))
			continue
		}
		fmt.Println("ok   " + p)
	}
	if len(errs) > 0 {
		e.close()
		fail(fmt.Errorf("%d of %d level file(s) invalid: %w", len(errs), len(files), errors.Join(errs...)))
	}
}

func runLevelsPreview(_ *cobra.Command, args []string) {
	e, err := loadEnv(true)
	if err != nil {
		fail(err)
	}
	defer e.close()

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		e.close()
		fail(fmt.Errorf("level number must be a positive integer, got %q", args[0]))
	}

	p := e.cfg.LevelPath(n)
	grid, err := parseLevelFile(e.fsys, p)
	if err != nil {
		e.close()
		fail(err)
	}
	fmt.Println(tui.RenderLevelPreview(p, grid, levelTheme()))
}

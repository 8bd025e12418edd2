package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-breakout/internal/breakout"
)

// LevelTheme contains the styles for level listings and previews.
type LevelTheme struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	EmptyCell lipgloss.Style
	Error     lipgloss.Style

	// Mono draws bricks as digits instead of tile colors.
	Mono bool
}

// DefaultLevelTheme returns the default visual theme.
func DefaultLevelTheme() LevelTheme {
	return LevelTheme{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		EmptyCell: lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// MonochromeLevelTheme returns a theme without brick colors.
func MonochromeLevelTheme() LevelTheme {
	theme := DefaultLevelTheme()
	theme.Title = lipgloss.NewStyle().Bold(true)
	theme.Label = lipgloss.NewStyle()
	theme.Value = lipgloss.NewStyle()
	theme.EmptyCell = lipgloss.NewStyle()
	theme.Error = lipgloss.NewStyle()
	theme.Mono = true
	return theme
}

// brick returns the style that paints a tile code in its tint.
func (t LevelTheme) brick(code int) lipgloss.Style {
	c := breakout.TileFor(code).Color
	rgb := [3]uint8{unit(c[0]), unit(c[1]), unit(c[2])}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex(rgb)))
}

func unit(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

// RenderLevelPreview draws grid two characters per tile, followed by a
// one-line summary.
func RenderLevelPreview(name string, grid [][]int, theme LevelTheme) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(name))
	b.WriteString("\n\n")

	for _, row := range grid {
		for _, code := range row {
			switch {
			case code == 0:
				b.WriteString(theme.EmptyCell.Render("··"))
			case theme.Mono:
				b.WriteString(strings.Repeat(strconv.Itoa(code), 2))
			default:
				b.WriteString(theme.brick(code).Render("██"))
			}
		}
		b.WriteString("\n")
	}

	s := breakout.Stats(grid)
	b.WriteString("\n")
	b.WriteString(theme.Label.Render("size "))
	b.WriteString(theme.Value.Render(fmt.Sprintf("%dx%d", s.Cols, s.Rows)))
	b.WriteString(theme.Label.Render("  bricks "))
	b.WriteString(theme.Value.Render(strconv.Itoa(s.Bricks)))
	b.WriteString(theme.Label.Render("  solid "))
	b.WriteString(theme.Value.Render(strconv.Itoa(s.Solid)))
	return b.String()
}

// LevelRow is one line of a level listing. Err is set when the file did not parse.
type LevelRow struct {
	Path  string
	Stats breakout.GridStats
	Err   error
}

// RenderLevelTable formats a level listing as a table.
func RenderLevelTable(rows []LevelRow, theme LevelTheme) string {
	columns := []table.Column{
		{Title: "File", Width: 24},
		{Title: "Size", Width: 7},
		{Title: "Bricks", Width: 6},
		{Title: "Solid", Width: 5},
		{Title: "Status", Width: 40},
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		if r.Err != nil {
			tableRows = append(tableRows, table.Row{r.Path, "-", "-", "-", r.Err.Error()})
			continue
		}
		tableRows = append(tableRows, table.Row{
			r.Path,
			fmt.Sprintf("%dx%d", r.Stats.Cols, r.Stats.Rows),
			strconv.Itoa(r.Stats.Bricks),
			strconv.Itoa(r.Stats.Solid),
			"ok",
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(theme.Title.GetForeground())
	// Static output has no cursor.
	styles.Selected = lipgloss.NewStyle()

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(len(tableRows)+1),
		table.WithFocused(false),
		table.WithStyles(styles),
	)
	return t.View()
}

package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalf draws the top pixel of a cell in the foreground color and the
// bottom pixel in the background color.
const upperHalf = "▀"

// CellsToPixels returns the framebuffer size that fills a terminal area of
// cols x rows cells. Every cell shows two vertically stacked pixels.
func CellsToPixels(cols, rows int) (width, height int) {
	return max(cols, 0), max(rows, 0) * 2
}

// FrameSize returns the framebuffer size for a terminal of cols x rows cells,
// leaving room for the status and help lines.
func FrameSize(cols, rows int) (width, height int) {
	return CellsToPixels(cols, rows-footerLines)
}

type cellColors struct {
	top, bottom [3]uint8
}

// Presenter converts a framebuffer to styled terminal text.
type Presenter struct {
	renderer *lipgloss.Renderer
	styles   map[cellColors]lipgloss.Style
}

// NewPresenter creates a presenter emitting escape sequences for the color
// profile of r. A nil r uses the default renderer for stdout.
func NewPresenter(r *lipgloss.Renderer) *Presenter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Presenter{renderer: r, styles: make(map[cellColors]lipgloss.Style)}
}

func (p *Presenter) style(c cellColors) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	s := p.renderer.NewStyle().
		Foreground(lipgloss.Color(hex(c.top))).
		Background(lipgloss.Color(hex(c.bottom)))
	// Bound the cache; a busy frame has far fewer distinct pairs.
	if len(p.styles) > 4096 {
		clear(p.styles)
	}
	p.styles[c] = s
	return s
}

func hex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func pixel(img *image.NRGBA, x, y int) [3]uint8 {
	if y >= img.Rect.Max.Y {
		return [3]uint8{}
	}
	i := img.PixOffset(x, y)
	return [3]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}
}

// Render converts the frame to one text line per two pixel rows.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Presenter) Render(img *image.NRGBA) string {
	b := img.Rect
	w, h := b.Dx(), b.Dy()
	rows := (h + 1) / 2

	var sb strings.Builder
	sb.Grow(w*rows*4 + rows)

	for row := range rows {
		if row > 0 {
			sb.WriteRune('\n')
		}
		y := b.Min.Y + row*2

		x := b.Min.X
		for x < b.Max.X {
			start := cellColors{top: pixel(img, x, y), bottom: pixel(img, x, y+1)}

			n := 0
			for x < b.Max.X {
				c := cellColors{top: pixel(img, x, y), bottom: pixel(img, x, y+1)}
				if c != start {
					break
				}
				n++
				x++
			}
			sb.WriteString(p.style(start).Render(strings.Repeat(upperHalf, n)))
		}
	}
	return sb.String()
}

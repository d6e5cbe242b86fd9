package weekgrid

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// canvas is a fixed grid of single-width cells painted back to front and
// rendered as runs of equally styled text.
type canvas struct {
	width  int
	height int
	cells  [][]cell
	styles []lipgloss.Style
}

type cell struct {
	ch    rune
	style int
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height, styles: []lipgloss.Style{lipgloss.NewStyle()}}
	c.cells = make([][]cell, height)
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{ch: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) style(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

func (c *canvas) put(x, y int, ch rune, style int) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = cell{ch: ch, style: style}
}

func (c *canvas) fill(x, y, w, h int, ch rune, style int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c.put(x+dx, y+dy, ch, style)
		}
	}
}

// text writes s from x, clipped to limit cells.
func (c *canvas) text(x, y int, s string, limit, style int) {
	i := 0
	for _, r := range s {
		if i >= limit {
			return
		}
		c.put(x+i, y, r, style)
		i++
	}
}

func (c *canvas) lines() []string {
	out := make([]string, c.height)
	var run strings.Builder
	for y, row := range c.cells {
		var line strings.Builder
		current := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(c.styles[current].Render(run.String()))
			run.Reset()
		}
		for _, cl := range row {
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.ch)
		}
		flush()
		out[y] = line.String()
	}
	return out
}

package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
)

// Placement controls overlay alignment and sizing. When Anchored is set the
// overlay's top-left corner is placed at (X, Y) and shifted back inside the
// screen if it would overflow; alignment and margins are ignored.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int

	Anchored bool
	X        int
	Y        int
}

// Centered is the placement used by modal dialogs.
func Centered() Placement {
	return Placement{Horizontal: lipgloss.Center, Vertical: lipgloss.Center}
}

// At anchors an overlay next to the cell (x, y).
func At(x, y int) Placement {
	return Placement{Anchored: true, X: x, Y: y}
}

// Compose overlays the foreground view atop the background while preserving
// background content outside the overlay bounds.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bgLines := normalizeBackground(background, width, height)
	if foreground == "" {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(foreground, "\n")
	offsetX, offsetY, overlayWidth, overlayHeight := Region(width, height, foreground, placement)
	if overlayWidth <= 0 || overlayHeight <= 0 {
		return strings.Join(bgLines, "\n")
	}

	for row := 0; row < overlayHeight; row++ {
		destY := offsetY + row
		if destY < 0 || destY >= len(bgLines) {
			continue
		}
		fgLine := ""
		if row < len(fgLines) {
			fgLine = fgLines[row]
		}
		fgLine = padToWidth(fgLine, overlayWidth)

		baseLine := bgLines[destY]
		prefix := truncate.String(baseLine, uint(offsetX))
		suffix := sliceWidth(baseLine, offsetX+overlayWidth, width)
		bgLines[destY] = prefix + fgLine + suffix
	}

	return strings.Join(bgLines, "\n")
}

// Region returns the cells Compose covers when drawing foreground on a
// width by height screen: the top-left corner and the size.
func Region(width, height int, foreground string, placement Placement) (x, y, w, h int) {
	if foreground == "" {
		return 0, 0, 0, 0
	}
	fgLines := strings.Split(foreground, "\n")
	w = placement.Width
	if w <= 0 {
		for _, line := range fgLines {
			w = max(w, lipgloss.Width(line))
		}
	}
	h = placement.Height
	if h <= 0 {
		h = len(fgLines)
	}
	w, h = min(w, width), min(h, height)
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0
	}
	x, y = computeOffsets(width, height, w, h, placement)
	return x, y, w, h
}

func normalizeBackground(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padToWidth(lines[i], width)
	}
	return lines
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currWidth := lipgloss.Width(s)
	if currWidth >= width {
		return lipgloss.NewStyle().Width(width).Render(s)
	}
	return s + strings.Repeat(" ", width-currWidth)
}

func sliceWidth(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	if end > lipgloss.Width(s) {
		end = lipgloss.Width(s)
	}
	if start >= end {
		return ""
	}

	runes := []rune(s)
	result := strings.Builder{}
	widthSeen := 0
	for _, r := range runes {
		rw := lipgloss.Width(string(r))
		next := widthSeen + rw
		if next <= start {
			widthSeen = next
			continue
		}
		if widthSeen >= end {
			break
		}
		if next > end {
			break
		}
		result.WriteRune(r)
		widthSeen = next
	}
	return result.String()
}

func computeOffsets(width, height, overlayWidth, overlayHeight int, placement Placement) (int, int) {
	if placement.Anchored {
		return clampOffset(placement.X, width-overlayWidth), clampOffset(placement.Y, height-overlayHeight)
	}
	h := placement.Horizontal
	if h == 0 {
		h = lipgloss.Center
	}
	v := placement.Vertical
	if v == 0 {
		v = lipgloss.Center
	}

	offsetX := placement.MarginX
	switch h {
	case lipgloss.Right:
		offsetX = width - overlayWidth - placement.MarginX
	case lipgloss.Center:
		offsetX = (width - overlayWidth) / 2
	}
	offsetX = clampOffset(offsetX, width-overlayWidth)

	offsetY := placement.MarginY
	switch v {
	case lipgloss.Bottom:
		offsetY = height - overlayHeight - placement.MarginY
	case lipgloss.Center:
		offsetY = (height - overlayHeight) / 2
	}
	offsetY = clampOffset(offsetY, height-overlayHeight)

	return offsetX, offsetY
}

func clampOffset(v, limit int) int {
	if v > limit {
		v = limit
	}
	if v < 0 {
		v = 0
	}
	return v
}

package timegrid

import "time"

// Geometry describes where the day columns of a week are drawn so pointer
// coordinates can be resolved into grid cells. Coordinates are terminal
// cells; Lines visible lines show Rows slots starting at First.
type Geometry struct {
	Left  int
	Top   int
	Width int
	Lines int
	First Slot
	Rows  int
}

// Contains reports whether (x, y) is inside the day columns.
func (g Geometry) Contains(x, y int) bool {
	if g.Width <= 0 || g.Lines <= 0 {
		return false
	}
	return x >= g.Left && x < g.Left+g.Width && y >= g.Top && y < g.Top+g.Lines
}

// Day maps a horizontal coordinate to a day index. Coordinates outside the
// columns are clamped.
func (g Geometry) Day(x int) int {
	if g.Width <= 0 {
		return 0
	}
	return ClampDay((x - g.Left) * DaysPerWeek / g.Width)
}

// Minute maps a vertical coordinate to minutes since midnight, proportionally
// over the visible rows.
func (g Geometry) Minute(y int) int {
	if g.Lines <= 0 {
		return g.First.Minutes()
	}
	rows := g.rows()
	off := (y - g.Top) * rows * SlotMinutes / g.Lines
	m := g.First.Minutes() + off
	return clamp(m, 0, MinutesPerDay-1)
}

// Row maps a vertical coordinate to a grid row.
func (g Geometry) Row(y int) Slot {
	return Slot(g.Minute(y) / SlotMinutes)
}

// TimeAt converts a pointer position into a day index and a time on that
// day within the week.
func (g Geometry) TimeAt(x, y int, week Week) (int, time.Time) {
	day := g.Day(x)
	base := week[day]
	m := g.Minute(y)
	return day, time.Date(base.Year(), base.Month(), base.Day(), m/60, m%60, 0, 0, base.Location())
}

// Column returns the x offset and width of the day's column.
func (g Geometry) Column(day int) (int, int) {
	x0 := g.Left + day*g.Width/DaysPerWeek
	x1 := g.Left + (day+1)*g.Width/DaysPerWeek
	return x0, x1 - x0
}

// Line returns the screen line on which row begins and whether it is
// visible.
func (g Geometry) Line(row Slot) (int, bool) {
	rows := g.rows()
	rel := int(row - g.First)
	if rel < 0 || rel >= rows || rows == 0 {
		return 0, false
	}
	return g.Top + rel*g.Lines/rows, true
}

// Visible reports whether any part of [start, end) rows is on screen.
func (g Geometry) Visible(start, end Slot) bool {
	last := g.First + Slot(g.rows())
	return end > g.First && start < last
}

func (g Geometry) rows() int {
	if g.Rows > 0 {
		return g.Rows
	}
	return g.Lines
}

// Extent returns the screen lines [top, bottom) covered by rows
// [start, end), clipped to the visible area.
func (g Geometry) Extent(start, end Slot) (int, int, bool) {
	rows := g.rows()
	if rows == 0 || !g.Visible(start, end) {
		return 0, 0, false
	}
	line := func(s Slot) int {
		rel := clamp(int(s-g.First), 0, rows)
		return g.Top + rel*g.Lines/rows
	}
	top, bottom := line(start), line(end)
	if bottom <= top {
		bottom = top + 1
	}
	return top, bottom, true
}

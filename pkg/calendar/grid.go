package calendar

import (
	"sort"
	"time"

	"tableflip.dev/tempo/pkg/timegrid"
)

// Placement is an event positioned on the week grid. Lane and Lanes split
// the day column between overlapping events.
type Placement struct {
	Event    Event
	Day      int
	StartRow timegrid.Slot
	EndRow   timegrid.Slot
	Lane     int
	Lanes    int
}

// NowMarker locates the current time on the grid.
type NowMarker struct {
	Day    int
	Row    timegrid.Slot
	Minute int
}

// Rect is a block of cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Grid is the week view controller. It owns the visible week and a drag
// session and reports user intent through its callbacks; it never mutates
// events itself.
type Grid struct {
	// OnCreate receives released drags.
	OnCreate func(Commit)
	// OnEdit receives clicks on an event block.
	OnEdit func(Event)
	// OnDelete receives clicks on an event's delete control.
	OnDelete func(Event)

	startsOn time.Weekday
	ref      time.Time
	week     timegrid.Week
	geom     timegrid.Geometry
	drag     DragSession
	placed   []Placement
}

// NewGrid shows the week containing ref.
func NewGrid(ref time.Time, startsOn time.Weekday) *Grid {
	g := &Grid{startsOn: startsOn}
	g.SetReference(ref)
	return g
}

// SetReference moves the window to the week containing ref.
func (g *Grid) SetReference(ref time.Time) {
	g.ref = timegrid.Midnight(ref)
	g.week = timegrid.WeekOf(g.ref, g.startsOn)
	g.drag.Reset()
}

// Reference is the date the window was derived from.
func (g *Grid) Reference() time.Time {
	return g.ref
}

// Shift moves the window by whole weeks.
func (g *Grid) Shift(weeks int) {
	g.SetReference(g.ref.AddDate(0, 0, weeks*timegrid.DaysPerWeek))
}

// Week is the visible window.
func (g *Grid) Week() timegrid.Week {
	return g.week
}

// StartsOn is the first weekday of every window.
func (g *Grid) StartsOn() time.Weekday {
	return g.startsOn
}

// SetGeometry records where the day columns are drawn.
func (g *Grid) SetGeometry(geom timegrid.Geometry) {
	g.geom = geom
}

// Geometry returns the last geometry set.
func (g *Grid) Geometry() timegrid.Geometry {
	return g.geom
}

// Place positions e in the window. Events starting on a day outside the
// window are not placed.
func (g *Grid) Place(e Event) (Placement, bool) {
	day := g.week.IndexOf(e.Start)
	if day < 0 {
		return Placement{}, false
	}
	s, end := e.Span()
	return Placement{Event: e, Day: day, StartRow: s, EndRow: end, Lane: 0, Lanes: 1}, true
}

// Layout places every event in the window and assigns overlap lanes per
// day. The result is kept for pointer hit testing.
func (g *Grid) Layout(events []Event) []Placement {
	var out []Placement
	for _, e := range events {
		if p, ok := g.Place(e); ok {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Event.Start.Before(out[j].Event.Start)
	})
	for start := 0; start < len(out); {
		end := start
		for end < len(out) && out[end].Day == out[start].Day {
			end++
		}
		spans := make([]timegrid.Span, end-start)
		for i := range spans {
			p := out[start+i]
			spans[i] = timegrid.Span{Start: int(p.StartRow), End: int(p.EndRow)}
		}
		for i, lane := range timegrid.Lanes(spans) {
			out[start+i].Lane = lane.Index
			out[start+i].Lanes = lane.Count
		}
		start = end
	}
	g.placed = out
	return out
}

// Block returns the cells a placement occupies with the current geometry.
func (g *Grid) Block(p Placement) (Rect, bool) {
	top, bottom, ok := g.geom.Extent(p.StartRow, p.EndRow)
	if !ok {
		return Rect{}, false
	}
	x0, w := g.geom.Column(p.Day)
	lanes := p.Lanes
	if lanes < 1 {
		lanes = 1
	}
	lx := x0 + w*p.Lane/lanes
	lw := x0 + w*(p.Lane+1)/lanes - lx
	if lw < 1 {
		return Rect{}, false
	}
	return Rect{X: lx, Y: top, W: lw, H: bottom - top}, true
}

// DeleteControl is the cell of a block that deletes its event. Blocks one
// cell wide have none so they can still be opened.
func DeleteControl(r Rect) (int, int, bool) {
	if r.W < 2 {
		return 0, 0, false
	}
	return r.X + r.W - 1, r.Y, true
}

// NowLine locates now in the window.
func (g *Grid) NowLine(now time.Time) (NowMarker, bool) {
	day := g.week.IndexOf(now)
	if day < 0 {
		return NowMarker{}, false
	}
	return NowMarker{
		Day:    day,
		Row:    timegrid.RowForTime(now),
		Minute: timegrid.MinutesOf(now) % timegrid.SlotMinutes,
	}, true
}

// Preview returns the interval of the drag in progress.
func (g *Grid) Preview() (Interval, bool) {
	return g.drag.Preview()
}

// Dragging reports whether a drag is in progress.
func (g *Grid) Dragging() bool {
	return g.drag.Active()
}

// PointerDown handles a press at (x, y). Presses on an event's delete
// control call OnDelete, elsewhere on the event OnEdit, and on empty cells
// they begin a drag. It reports whether the press landed on the grid.
func (g *Grid) PointerDown(x, y int) bool {
	if !g.geom.Contains(x, y) {
		return false
	}
	for i := len(g.placed) - 1; i >= 0; i-- {
		p := g.placed[i]
		r, ok := g.Block(p)
		if !ok || !r.Contains(x, y) {
			continue
		}
		if dx, dy, ok := DeleteControl(r); ok && x == dx && y == dy {
			if g.OnDelete != nil {
				g.OnDelete(p.Event)
			}
			return true
		}
		if g.OnEdit != nil {
			g.OnEdit(p.Event)
		}
		return true
	}
	day, at := g.geom.TimeAt(x, y, g.week)
	g.drag.Begin(day, at)
	return true
}

// PointerMove extends a drag to the end of the cell under the pointer.
// Leaving the grid cancels the drag.
func (g *Grid) PointerMove(x, y int) {
	if !g.drag.Active() {
		return
	}
	if !g.geom.Contains(x, y) {
		g.drag.Leave()
		return
	}
	day, at := g.geom.TimeAt(x, y+1, g.week)
	g.drag.Move(day, at)
}

// PointerUp releases a drag and hands the commit to OnCreate. A release
// outside the grid cancels the drag.
func (g *Grid) PointerUp(x, y int) (Commit, bool) {
	if !g.geom.Contains(x, y) {
		g.drag.Leave()
		return Commit{}, false
	}
	c, ok := g.drag.Release(Point{X: x, Y: y})
	if !ok {
		return Commit{}, false
	}
	if g.OnCreate != nil {
		g.OnCreate(c)
	}
	return c, true
}

// PointerLeave cancels a drag in progress.
func (g *Grid) PointerLeave() {
	g.drag.Leave()
}

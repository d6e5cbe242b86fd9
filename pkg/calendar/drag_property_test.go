package calendar

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"tableflip.dev/tempo/pkg/timegrid"
)

// TestPropertyReleaseMinimumAndAlignment verifies every committed interval
// lasts at least one slot, starts and ends on slot boundaries, and gets
// exactly one slot when the drag was shorter than that.
func TestPropertyReleaseMinimumAndAlignment(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		startMin := rapid.IntRange(0, timegrid.MinutesPerDay-1).Draw(rt, "start")
		moves := rapid.SliceOfN(rapid.IntRange(-120, 600), 0, 8).Draw(rt, "moves")
		base := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
		start := base.Add(time.Duration(startMin) * time.Minute)

		var s DragSession
		s.Begin(0, start)
		last := start
		for _, d := range moves {
			last = start.Add(time.Duration(d) * time.Minute)
			s.Move(0, last)
		}
		c, ok := s.Release(Point{})
		if !ok {
			rt.Fatalf("release failed")
		}
		if !c.Start.Equal(timegrid.Floor(start)) {
			rt.Fatalf("start %v, want %v", c.Start, timegrid.Floor(start))
		}
		dur := c.End.Sub(c.Start)
		if dur < timegrid.SlotDuration {
			rt.Fatalf("duration %v below one slot", dur)
		}
		if dur%timegrid.SlotDuration != 0 {
			rt.Fatalf("duration %v not slot aligned", dur)
		}
		if c.EndRow <= c.StartRow {
			rt.Fatalf("rows [%d, %d) empty", c.StartRow, c.EndRow)
		}
		if last.Sub(c.Start) < timegrid.SlotDuration && dur != timegrid.SlotDuration {
			rt.Fatalf("short drag ended at %v, want start+15m", c.End)
		}
	})
}

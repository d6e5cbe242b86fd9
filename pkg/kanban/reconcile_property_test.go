package kanban

import (
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"tableflip.dev/tempo/pkg/palette"
)

func genGoal(rt *rapid.T) Goal {
	cols := rapid.IntRange(1, MaxColumns).Draw(rt, "columns")
	g := Goal{ID: "g", Title: "g", Color: palette.Orange}
	n := 0
	for c := 0; c < cols; c++ {
		col := Column{
			ID:    "c" + strconv.Itoa(c),
			Color: rapid.SampledFrom(palette.Keys()).Draw(rt, "color"),
			Tasks: []Task{},
		}
		for k := rapid.IntRange(0, 6).Draw(rt, "tasks"); k > 0; k-- {
			col.Tasks = append(col.Tasks, Task{ID: "t" + strconv.Itoa(n), Title: "t", Color: col.Color})
			n++
		}
		g.Columns = append(g.Columns, col)
	}
	return g
}

func allTaskIDs(g *Goal) map[string]int {
	seen := map[string]int{}
	for _, c := range g.Columns {
		for _, t := range c.Tasks {
			seen[t.ID]++
		}
	}
	return seen
}

// TestPropertyMoveTaskConservesTasks verifies any sequence of drops keeps the
// same set of tasks with no duplicates and every moved task wears its new
// column's color.
func TestPropertyMoveTaskConservesTasks(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := genGoal(rt)
		want := allTaskIDs(&g)
		if len(want) == 0 {
			return
		}
		ids := make([]string, 0, len(want))
		for id := range want {
			ids = append(ids, id)
		}

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(ids).Draw(rt, "task")
			var to Target
			if rapid.Bool().Draw(rt, "onto_task") {
				to.TaskID = rapid.SampledFrom(ids).Draw(rt, "over")
			} else {
				to.ColumnID = g.Columns[rapid.IntRange(0, len(g.Columns)-1).Draw(rt, "col")].ID
			}
			counts := make([]int, len(g.Columns))
			for ci, c := range g.Columns {
				counts[ci] = len(c.Tasks)
			}

			move, ok := MoveTask(&g, id, to)

			got := allTaskIDs(&g)
			if len(got) != len(want) {
				rt.Fatalf("task set changed size: %d != %d", len(got), len(want))
			}
			for tid, n := range got {
				if n != 1 || want[tid] != 1 {
					rt.Fatalf("task %s appears %d times", tid, n)
				}
			}
			if !ok {
				continue
			}
			if move.FromColumn == move.ToColumn {
				for ci, c := range g.Columns {
					if len(c.Tasks) != counts[ci] {
						rt.Fatalf("reorder changed column %s count", c.ID)
					}
				}
			}
			ci, ti, found := g.FindTask(id)
			if !found {
				rt.Fatalf("moved task %s lost", id)
			}
			if g.Columns[ci].ID != move.ToColumn || ti != move.Index {
				rt.Fatalf("task %s at %s[%d], reported %s[%d]", id, g.Columns[ci].ID, ti, move.ToColumn, move.Index)
			}
			if move.FromColumn != move.ToColumn && g.Columns[ci].Tasks[ti].Color != g.Columns[ci].Color {
				rt.Fatalf("task %s color %s in column colored %s", id, g.Columns[ci].Tasks[ti].Color, g.Columns[ci].Color)
			}
		}
	})
}

// TestPropertyDeleteGoalKeepsOrder verifies deleting a goal removes exactly
// that goal and leaves the others in their relative order.
func TestPropertyDeleteGoalKeepsOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, MaxGoals).Draw(rt, "goals")
		b := &Board{}
		for i := 0; i < n; i++ {
			b.Goals = append(b.Goals, Goal{ID: "g" + strconv.Itoa(i)})
		}
		victim := b.Goals[rapid.IntRange(0, n-1).Draw(rt, "victim")].ID

		var want []string
		for _, id := range b.Order() {
			if id != victim {
				want = append(want, id)
			}
		}

		var d Deletion
		d.RequestGoal(victim)
		if _, err := d.Confirm(b); err != nil {
			rt.Fatalf("confirm: %v", err)
		}
		got := b.Order()
		if len(got) != len(want) {
			rt.Fatalf("order %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				rt.Fatalf("order %v, want %v", got, want)
			}
		}
	})
}

// TestPropertyArrayMovePermutes verifies ArrayMove only permutes and places
// the moved item at the target index.
func TestPropertyArrayMovePermutes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.SliceOfNDistinct(rapid.IntRange(0, 1000), 1, 20, rapid.ID[int]).Draw(rt, "items")
		from := rapid.IntRange(0, len(s)-1).Draw(rt, "from")
		to := rapid.IntRange(0, len(s)-1).Draw(rt, "to")
		item := s[from]
		orig := append([]int(nil), s...)

		got := ArrayMove(s, from, to)
		if got[to] != item {
			rt.Fatalf("item %d at %d, want %d", got[to], to, item)
		}
		seen := map[int]bool{}
		for _, v := range got {
			seen[v] = true
		}
		for _, v := range orig {
			if !seen[v] {
				rt.Fatalf("lost %d", v)
			}
		}
	})
}

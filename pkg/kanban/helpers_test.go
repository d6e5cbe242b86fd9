package kanban

import (
	"strconv"
	"testing"

	"tableflip.dev/tempo/pkg/palette"
)

// sequentialIDs makes NewID return id-1, id-2, ... for the test.
func sequentialIDs(t *testing.T) {
	t.Helper()
	prev := NewID
	n := 0
	NewID = func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
	t.Cleanup(func() { NewID = prev })
}

// boardFixture builds one goal "g" with columns todo, doing and done. todo
// holds t0..t2, done is empty and colored green.
func boardFixture() *Board {
	task := func(id string) Task { return Task{ID: id, Title: id, Color: palette.Gray} }
	return &Board{Goals: []Goal{{
		ID:    "g",
		Title: "Ship",
		Color: palette.Orange,
		Columns: []Column{
			{ID: "todo", Title: "To Do", Color: palette.Gray, Tasks: []Task{task("t0"), task("t1"), task("t2")}},
			{ID: "doing", Title: "In Progress", Color: palette.Blue, Tasks: []Task{{ID: "t3", Title: "t3", Color: palette.Blue}}},
			{ID: "done", Title: "Done", Color: palette.Green, Tasks: []Task{}},
		},
	}}}
}

func taskIDs(c Column) []string {
	ids := make([]string, len(c.Tasks))
	for i, t := range c.Tasks {
		ids[i] = t.ID
	}
	return ids
}

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/timegrid"
)

func TestQuickSaveDefaults(t *testing.T) {
	b := NewBook()
	e, err := b.QuickSave("   ", at(4, 9, 0), at(4, 9, 15), "")
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	require.Equal(t, UntitledTitle, e.Title)
	require.Equal(t, palette.Blue, e.Color())
	require.Equal(t, Standalone{Paint: palette.Blue}, e.Link)
}

func TestSaveValidates(t *testing.T) {
	b := NewBook()
	_, err := b.Save(Event{Title: "x", Start: at(4, 9, 0), End: at(4, 9, 0)})
	require.ErrorIs(t, err, ErrInvalidInterval)
	_, err = b.Save(Event{Title: " ", Start: at(4, 9, 0), End: at(4, 10, 0)})
	require.ErrorIs(t, err, ErrTitleRequired)
	_, err = b.Save(Event{Title: "standup", Start: at(4, 9, 0), End: at(4, 9, 5)})
	require.ErrorIs(t, err, ErrInvalidInterval)
	_, err = b.Save(Event{ID: "ghost", Title: "x", Start: at(4, 9, 0), End: at(4, 10, 0)})
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, b.Len())
}

func TestSaveUpdatesAndDeletes(t *testing.T) {
	b := NewBook()
	e, err := b.QuickSave("Focus", at(4, 9, 0), at(4, 10, 0), palette.Green)
	require.NoError(t, err)

	e.Title = "Deep focus"
	e.Link = TaskLinked{GoalID: "g", TaskID: "t", GoalColor: palette.Orange, TaskColor: palette.Violet}
	e.Notifications = []time.Time{at(4, 8, 55), at(4, 8, 30)}
	_, err = b.Save(e)
	require.NoError(t, err)

	got, ok := b.Get(e.ID)
	require.True(t, ok)
	require.Equal(t, "Deep focus", got.Title)
	require.Equal(t, palette.Violet, got.Color())
	require.Equal(t, at(4, 8, 30), got.Notifications[0])
	require.Equal(t, 1, b.Len())

	_, err = b.Delete(e.ID)
	require.NoError(t, err)
	_, err = b.Delete(e.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveKeepsCallerNotifications(t *testing.T) {
	b := NewBook()
	notes := []time.Time{at(4, 8, 55), at(4, 8, 30)}
	e, err := b.Save(Event{Title: "x", Start: at(4, 9, 0), End: at(4, 10, 0), Notifications: notes})
	require.NoError(t, err)
	require.Equal(t, []time.Time{at(4, 8, 55), at(4, 8, 30)}, notes)
	require.Equal(t, []time.Time{at(4, 8, 30), at(4, 8, 55)}, e.Notifications)

	got, _ := b.Get(e.ID)
	require.Equal(t, at(4, 8, 30), got.Notifications[0])
}

func TestInWeekAndDue(t *testing.T) {
	b := NewBook()
	e1, _ := b.QuickSave("a", at(5, 9, 0), at(5, 10, 0), "")
	_, _ = b.QuickSave("b", at(12, 9, 0), at(12, 10, 0), "")
	e1.Notifications = []time.Time{at(5, 8, 50)}
	_, err := b.Save(e1)
	require.NoError(t, err)

	week := timegrid.WeekOf(at(6, 0, 0), time.Monday)
	in := b.InWeek(week)
	require.Len(t, in, 1)
	require.Equal(t, "a", in[0].Title)

	require.Len(t, b.Due(at(5, 8, 45), at(5, 8, 50)), 1)
	require.Empty(t, b.Due(at(5, 8, 50), at(5, 9, 0)))
}

func TestLinkColors(t *testing.T) {
	require.Equal(t, palette.Orange, GoalLinked{GoalID: "g"}.Color())
	require.Equal(t, palette.Green, TaskLinked{GoalColor: palette.Green}.Color())
	require.Equal(t, palette.Blue, Event{}.Color())
}

func TestUnlinkGoal(t *testing.T) {
	b := NewBook()
	e, _ := b.Save(Event{Title: "x", Start: at(4, 9, 0), End: at(4, 10, 0), Link: GoalLinked{GoalID: "g", GoalColor: palette.Red}})
	_, _ = b.Save(Event{Title: "y", Start: at(4, 9, 0), End: at(4, 10, 0), Link: GoalLinked{GoalID: "other"}})

	require.Equal(t, 1, b.UnlinkGoal("g"))
	got, _ := b.Get(e.ID)
	require.Equal(t, Standalone{Paint: palette.Red}, got.Link)
}

package ui

import (
	"context"
	"time"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/timegrid"
)

var timeNow = time.Now

type demoTask struct {
	column int
	title  string
}

// Seed fills an empty board with a sample goal and adds a few events to the
// week containing now. Boards that already hold goals only get the events.
func Seed(_ context.Context, svc *app.Service, now time.Time, startsOn time.Weekday) error {
	if len(svc.Snapshot().Goals) == 0 {
		g, err := svc.AddGoal("Launch", palette.Orange)
		if err != nil {
			return err
		}
		tasks := []demoTask{
			{0, "Write landing page"},
			{0, "Record demo video"},
			{1, "Pricing table"},
			{2, "Pick a name"},
		}
		for _, t := range tasks {
			if _, err := svc.AddTask(g.ID, g.Columns[t.column].ID, t.title, ""); err != nil {
				return err
			}
		}
		if _, err := svc.AddGoal("Health", palette.Green); err != nil {
			return err
		}
		svc.Flush()
	}

	week := timegrid.WeekOf(now, startsOn)
	at := func(day, hour, minute int) time.Time {
		d := week.Start().AddDate(0, 0, day)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
	}
	events := []struct {
		title      string
		start, end time.Time
		color      palette.Key
	}{
		{"Standup", at(0, 9, 0), at(0, 9, 15), palette.Blue},
		{"Design review", at(1, 13, 0), at(1, 14, 30), palette.Violet},
		{"Run", at(2, 7, 0), at(2, 8, 0), palette.Green},
		{"Standup", at(2, 9, 0), at(2, 9, 15), palette.Blue},
		{"Lunch", at(3, 12, 0), at(3, 13, 0), calendar.DefaultColor},
	}
	for _, e := range events {
		if _, err := svc.QuickAddEvent(e.title, e.start, e.end, e.color); err != nil {
			return err
		}
	}
	return nil
}

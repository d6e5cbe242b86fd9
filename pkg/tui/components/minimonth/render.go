// Package minimonth provides the month navigator shown beside the week grid.
package minimonth

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
)

// cellWidth is a two digit day plus the gap after it.
const cellWidth = 3

// Day describes a single day rendered in the month.
type Day struct {
	Day      int
	HasEvent bool
	IsToday  bool
	InWeek   bool
}

// Options controls month styling.
type Options struct {
	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style
	EmptyStyle  lipgloss.Style
	EventStyle  lipgloss.Style
	TodayStyle  lipgloss.Style
	WeekStyle   lipgloss.Style
	StartsOn    time.Weekday
}

// Render produces the title, weekday header and week rows for month.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}
	daysInMonth := DaysIn(month)
	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= daysInMonth {
			byDay[d.Day] = d
		}
	}

	lines := []string{
		opts.TitleStyle.Render(month.Format("January 2006")),
		opts.HeaderStyle.Render(weekdayHeader(opts.StartsOn)),
	}
	for _, row := range Weeks(month, opts.StartsOn) {
		cells := make([]string, 0, len(row))
		for _, day := range row {
			if day == 0 {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(byDay[day], day, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(info Day, day int, opts Options) string {
	text := fmt.Sprintf("%2d", day)

	style := opts.EmptyStyle
	if info.HasEvent {
		style = opts.EventStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.InWeek {
		style = style.Inherit(opts.WeekStyle)
	}
	return style.Render(text)
}

// Weeks lays out month as rows of seven day numbers starting on startsOn.
// Cells outside the month are zero.
func Weeks(month time.Time, startsOn time.Weekday) [][]int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	offset := (int(first.Weekday()) - int(startsOn) + 7) % 7
	daysInMonth := DaysIn(month)
	rows := (offset + daysInMonth + 6) / 7

	out := make([][]int, rows)
	for row := range out {
		out[row] = make([]int, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day >= 1 && day <= daysInMonth {
				out[row][col] = day
			}
		}
	}
	return out
}

func weekdayHeader(startsOn time.Weekday) string {
	names := make([]string, 7)
	for i := range names {
		names[i] = time.Weekday((int(startsOn) + i) % 7).String()[:2]
	}
	return strings.Join(names, " ")
}

// DaysIn returns the number of days in a month.
func DaysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}

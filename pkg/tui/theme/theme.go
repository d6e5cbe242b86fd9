package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/palette"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Footer FooterTheme
	Grid   GridTheme
	Board  BoardTheme
	Modal  ModalTheme
}

// HeaderTheme styles the tab bar.
type HeaderTheme struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Title     lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// GridTheme styles the week grid.
type GridTheme struct {
	Gutter    lipgloss.Style
	Day       lipgloss.Style
	Today     lipgloss.Style
	Rule      lipgloss.Style
	Hour      lipgloss.Style
	Now       lipgloss.Style
	Preview   lipgloss.Style
	Month     lipgloss.Style
	MonthDay  lipgloss.Style
	MonthWeek lipgloss.Style
}

// BoardTheme styles the goals sidebar and Kanban columns.
type BoardTheme struct {
	Goal         lipgloss.Style
	SelectedGoal lipgloss.Style
	Column       lipgloss.Style
	ColumnTitle  lipgloss.Style
	Card         lipgloss.Style
	Selected     lipgloss.Style
	DropTarget   lipgloss.Style
	Ghost        lipgloss.Style
	Empty        lipgloss.Style
}

// ModalTheme styles overlays (popover, forms, confirmations).
type ModalTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Body   lipgloss.Style
	Label  lipgloss.Style
	Error  lipgloss.Style
	Danger lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	tab := lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("244"))
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Tab:       tab,
			ActiveTab: tab.Foreground(lipgloss.Color("212")).Bold(true).Underline(true),
			Title:     lipgloss.NewStyle().Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Red.Saturated())),
		},
		Grid: GridTheme{
			Gutter:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Day:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
			Today:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Underline(true),
			Rule:      lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
			Hour:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Now:       lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Red.Saturated())),
			Preview:   lipgloss.NewStyle().Background(lipgloss.Color(palette.Blue.Desaturated())).Foreground(lipgloss.Color("#111827")),
			Month:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			MonthDay:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			MonthWeek: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		},
		Board: BoardTheme{
			Goal:         lipgloss.NewStyle().Padding(0, 1),
			SelectedGoal: lipgloss.NewStyle().Padding(0, 1).Reverse(true),
			Column:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")),
			ColumnTitle:  lipgloss.NewStyle().Bold(true),
			Card:         lipgloss.NewStyle().Padding(0, 1),
			Selected:     lipgloss.NewStyle().Bold(true).Underline(true),
			DropTarget:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("212")),
			Ghost:        lipgloss.NewStyle().Faint(true),
			Empty:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Modal: ModalTheme{
			Frame:  frame,
			Title:  lipgloss.NewStyle().Bold(true),
			Body:   lipgloss.NewStyle(),
			Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Red.Saturated())),
			Danger: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Red.Saturated())),
		},
	}
}

// Fill styles text on a palette color the way event blocks and task cards
// are painted: desaturated background, readable text.
func Fill(key palette.Key) lipgloss.Style {
	bg := key.Desaturated()
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(palette.TextOn(bg)))
}

// Solid is Fill with the saturated shade.
func Solid(key palette.Key) lipgloss.Style {
	bg := key.Saturated()
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(palette.TextOn(bg)))
}

// Accent colors text with the saturated shade.
func Accent(key palette.Key) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(key.Saturated()))
}

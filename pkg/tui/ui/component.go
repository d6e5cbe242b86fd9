package ui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

// Component defines the contract for the widgets the root model lays out.
// Bounds are absolute screen cells so components can resolve mouse input
// on their own.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetBounds(Bounds)
}

// Overlay is a dialog drawn over the main view. It receives every key while
// open.
type Overlay interface {
	Init() tea.Cmd
	Update(tea.Msg) (Overlay, tea.Cmd)
	View() string
	Placement() overlay.Placement
}

// Bounds is the screen area assigned to a component.
type Bounds struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the absolute cell (x, y) is inside b.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Local converts absolute coordinates into coordinates relative to b.
func (b Bounds) Local(x, y int) (int, int) {
	return x - b.X, y - b.Y
}

// Empty reports whether b has no drawable area.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Package board renders the goals sidebar and the selected goal's Kanban
// columns, and drives drag and drop and keyboard edits against the service.
package board

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	"tableflip.dev/tempo/pkg/tui/ui"
	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

// Model is the goals board component.
type Model struct {
	id     events.ComponentID
	svc    *app.Service
	styles theme.BoardTheme
	log    *zap.Logger
	bounds ui.Bounds

	goalID   string
	columnID string
	taskID   string

	tasks   kanban.Sensor
	goals   kanban.Sensor
	pointer kanban.Point
}

// New constructs a board over svc, selecting the first goal.
func New(id events.ComponentID, svc *app.Service, styles theme.BoardTheme, log *zap.Logger) *Model {
	if id == "" {
		id = events.ComponentID("board")
	}
	if log == nil {
		log = zap.NewNop()
	}
	m := &Model{
		id:     id,
		svc:    svc,
		styles: styles,
		log:    log,
		tasks:  kanban.Sensor{Distance: kanban.TaskActivationDistance},
		goals:  kanban.Sensor{Distance: kanban.GoalActivationDistance},
	}
	m.Sync()
	return m
}

// ID returns the component identifier used in emitted events.
func (m *Model) ID() events.ComponentID { return m.id }

// Selection returns the selected goal, column and task ids.
func (m *Model) Selection() (string, string, string) {
	return m.goalID, m.columnID, m.taskID
}

// Select focuses a goal.
func (m *Model) Select(goalID string) {
	m.goalID, m.columnID, m.taskID = goalID, "", ""
	m.Sync()
}

// Dragging reports whether a pointer drag is running.
func (m *Model) Dragging() bool {
	return m.tasks.Dragging() || m.goals.Dragging()
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetBounds implements ui.Component.
func (m *Model) SetBounds(b ui.Bounds) { m.bounds = b }

// Sync repairs the selection after the board changed underneath it.
func (m *Model) Sync() {
	board := m.svc.Snapshot()
	g, _, ok := board.Goal(m.goalID)
	if !ok {
		m.goalID, m.columnID, m.taskID = "", "", ""
		if len(board.Goals) == 0 {
			return
		}
		g = &board.Goals[0]
		m.goalID = g.ID
	}
	col, ci, ok := g.Column(m.columnID)
	if !ok {
		m.columnID, m.taskID = "", ""
		if len(g.Columns) == 0 {
			return
		}
		col, ci = &g.Columns[0], 0
		m.columnID = col.ID
	}
	if m.taskID != "" {
		if tci, _, found := g.FindTask(m.taskID); found {
			if tci != ci {
				m.columnID = g.Columns[tci].ID
			}
			return
		}
	}
	m.taskID = ""
	if len(col.Tasks) > 0 {
		m.taskID = col.Tasks[0].ID
	}
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(v.String())
	case tea.MouseClickMsg:
		mouse := v.Mouse()
		if mouse.Button == tea.MouseLeft {
			return m, m.press(mouse.X, mouse.Y)
		}
	case tea.MouseMotionMsg:
		mouse := v.Mouse()
		m.motion(mouse.X, mouse.Y)
	case tea.MouseReleaseMsg:
		mouse := v.Mouse()
		return m, m.release(mouse.X, mouse.Y)
	case events.PromptSubmitMsg:
		if v.Component == m.id {
			return m, m.applyPrompt(v)
		}
	case events.ConfirmResultMsg:
		if v.Component == m.id {
			return m, m.applyConfirm(v.Accepted)
		}
	case events.BoardChangedMsg:
		m.Sync()
	}
	return m, nil
}

func (m *Model) layout() layout {
	return computeLayout(m.bounds, m.svc.Snapshot(), m.goalID)
}

func (m *Model) press(x, y int) tea.Cmd {
	r, ok := m.layout().hit(x, y)
	if !ok {
		return nil
	}
	at := kanban.Point{X: x, Y: y}
	m.pointer = at
	if id, ok := r.drag(); ok {
		switch r.kind {
		case regionGoal:
			m.goals.Press(id, at)
			return nil
		case regionTask:
			m.taskID = r.taskID
		}
		m.columnID = r.columnID
		m.tasks.Press(id, at)
		return nil
	}
	switch r.kind {
	case regionColumn:
		m.columnID = r.columnID
		m.Sync()
	case regionAddGoal:
		return m.prompt(events.PromptAddGoal, "New goal", "", events.BoardRef{})
	case regionAddColumn:
		return m.prompt(events.PromptAddColumn, "New column", kanban.NewColumnTitle, events.BoardRef{GoalID: r.goalID})
	case regionAddTask:
		m.columnID = r.columnID
		return m.prompt(events.PromptAddTask, "New task", "", events.BoardRef{GoalID: r.goalID, ColumnID: r.columnID})
	}
	return nil
}

func (m *Model) sensor() *kanban.Sensor {
	if _, ok := m.goals.Pressed(); ok {
		return &m.goals
	}
	return &m.tasks
}

func (m *Model) motion(x, y int) {
	s := m.sensor()
	id, ok := s.Pressed()
	if !ok {
		return
	}
	m.pointer = kanban.Point{X: x, Y: y}
	if s.Move(m.pointer) {
		if _, started := m.svc.StartDrag(id); !started {
			s.Reset()
			return
		}
		m.log.Debug("drag started", zap.String("id", string(id)))
	}
	if !s.Dragging() {
		return
	}
	over := kanban.DragID("")
	if r, hit := m.layout().hit(x, y); hit {
		over = r.drop()
	}
	m.svc.DragOver(over)
}

func (m *Model) release(x, y int) tea.Cmd {
	s := m.sensor()
	id, dragged := s.Release()
	if id == "" {
		return nil
	}
	if !dragged {
		if kind, eid, ok := id.Parse(); ok && kind == kanban.KindGoal {
			m.Select(eid)
		}
		return nil
	}
	over := kanban.DragID("")
	if r, hit := m.layout().hit(x, y); hit {
		over = r.drop()
	}
	res, ok := m.svc.EndDrag(over)
	if !ok {
		m.log.Debug("drop ignored", zap.String("id", string(id)), zap.String("over", string(over)))
		return nil
	}
	m.Sync()
	return m.changed(res.GoalID, describe(res))
}

func describe(res kanban.Result) string {
	switch res.Kind {
	case kanban.KindGoal:
		return "Goal moved"
	case kanban.KindColumn:
		return "Column moved"
	}
	if res.Task.FromColumn != res.Task.ToColumn {
		return "Task moved to another column"
	}
	return "Task reordered"
}

func (m *Model) changed(goalID, status string) tea.Cmd {
	return tea.Batch(
		events.Emit(events.BoardChangedMsg{Component: m.id, GoalID: goalID}),
		events.StatusCmd(status),
	)
}

func (m *Model) prompt(action events.PromptAction, title, value string, ref events.BoardRef) tea.Cmd {
	return events.Emit(events.PromptRequestMsg{
		Component:   m.id,
		Action:      action,
		Title:       title,
		Placeholder: "Title",
		Value:       value,
		Ref:         ref,
	})
}

// current resolves the selection against a fresh snapshot.
func (m *Model) current() (kanban.Board, *kanban.Goal, int, int) {
	board := m.svc.Snapshot()
	g, _, ok := board.Goal(m.goalID)
	if !ok {
		return board, nil, -1, -1
	}
	_, ci, ok := g.Column(m.columnID)
	if !ok {
		return board, g, -1, -1
	}
	ti := -1
	if m.taskID != "" {
		if c, i, found := g.FindTask(m.taskID); found && c == ci {
			ti = i
		}
	}
	return board, g, ci, ti
}

func (m *Model) handleKey(key string) tea.Cmd {
	if key == "esc" && m.Dragging() {
		m.svc.CancelDrag()
		m.tasks.Reset()
		m.goals.Reset()
		return events.StatusCmd("Drag cancelled")
	}
	board, g, ci, ti := m.current()
	switch key {
	case "n":
		return m.prompt(events.PromptAddGoal, "New goal", "", events.BoardRef{})
	case "tab", "shift+tab":
		if len(board.Goals) == 0 {
			return nil
		}
		_, gi, _ := board.Goal(m.goalID)
		step := 1
		if key == "shift+tab" {
			step = -1
		}
		m.Select(board.Goals[(gi+step+len(board.Goals))%len(board.Goals)].ID)
		return nil
	}
	if g == nil {
		return nil
	}

	switch key {
	case "R":
		return m.prompt(events.PromptRenameGoal, "Rename goal", g.Title, events.BoardRef{GoalID: g.ID})
	case "P":
		return m.errOr(m.svc.RecolorGoal(g.ID, g.Color.Next()), g.ID, "Goal recolored")
	case "X":
		m.svc.RequestDeleteGoal(g.ID)
		return events.Emit(events.ConfirmRequestMsg{
			Component: m.id,
			Title:     "Delete goal?",
			Body:      fmt.Sprintf("%q and its %d tasks will be removed.", g.Title, g.TaskCount()),
		})
	case "[", "alt+up":
		if _, gi, _ := board.Goal(g.ID); gi > 0 && m.svc.MoveGoal(g.ID, board.Goals[gi-1].ID) {
			return m.changed(g.ID, "Goal moved")
		}
		return nil
	case "]", "alt+down":
		if _, gi, _ := board.Goal(g.ID); gi < len(board.Goals)-1 && m.svc.MoveGoal(g.ID, board.Goals[gi+1].ID) {
			return m.changed(g.ID, "Goal moved")
		}
		return nil
	case "c":
		return m.prompt(events.PromptAddColumn, "New column", kanban.NewColumnTitle, events.BoardRef{GoalID: g.ID})
	}
	if ci < 0 {
		return nil
	}
	col := g.Columns[ci]

	switch key {
	case "left", "h":
		if ci > 0 {
			m.columnID, m.taskID = g.Columns[ci-1].ID, ""
			m.Sync()
		}
	case "right", "l":
		if ci < len(g.Columns)-1 {
			m.columnID, m.taskID = g.Columns[ci+1].ID, ""
			m.Sync()
		}
	case "up", "k":
		if ti > 0 {
			m.taskID = col.Tasks[ti-1].ID
		}
	case "down", "j":
		if ti >= 0 && ti < len(col.Tasks)-1 {
			m.taskID = col.Tasks[ti+1].ID
		}
	case "r":
		return m.prompt(events.PromptRenameColumn, "Rename column", col.Title, events.BoardRef{GoalID: g.ID, ColumnID: col.ID})
	case "p":
		return m.errOr(m.svc.RecolorColumn(g.ID, col.ID, col.Color.Next()), g.ID, "Column recolored")
	case "D":
		m.svc.RequestDeleteColumn(g.ID, col.ID)
		return events.Emit(events.ConfirmRequestMsg{
			Component: m.id,
			Title:     "Delete column?",
			Body:      fmt.Sprintf("%q and its %d tasks will be removed.", col.Title, len(col.Tasks)),
		})
	case "<", "alt+left":
		if ci > 0 && m.svc.MoveColumn(g.ID, col.ID, g.Columns[ci-1].ID) {
			return m.changed(g.ID, "Column moved")
		}
	case ">", "alt+right":
		if ci < len(g.Columns)-1 && m.svc.MoveColumn(g.ID, col.ID, g.Columns[ci+1].ID) {
			return m.changed(g.ID, "Column moved")
		}
	case "a":
		return m.prompt(events.PromptAddTask, "New task", "", events.BoardRef{GoalID: g.ID, ColumnID: col.ID})
	}
	if ti < 0 {
		return nil
	}
	task := col.Tasks[ti]

	switch key {
	case "enter", "e":
		return m.prompt(events.PromptEditTask, "Edit task", task.Title, events.BoardRef{GoalID: g.ID, ColumnID: col.ID, TaskID: task.ID})
	case "x", "delete":
		return m.errOr(m.svc.DeleteTask(g.ID, task.ID), g.ID, "Task deleted")
	case "shift+left", "H":
		if ci > 0 {
			return m.moveTask(g.ID, task.ID, kanban.Target{ColumnID: g.Columns[ci-1].ID})
		}
	case "shift+right", "L":
		if ci < len(g.Columns)-1 {
			return m.moveTask(g.ID, task.ID, kanban.Target{ColumnID: g.Columns[ci+1].ID})
		}
	case "shift+up", "K":
		if ti > 0 {
			return m.moveTask(g.ID, task.ID, kanban.Target{TaskID: col.Tasks[ti-1].ID})
		}
	case "shift+down", "J":
		if ti < len(col.Tasks)-1 {
			return m.moveTask(g.ID, task.ID, kanban.Target{TaskID: col.Tasks[ti+1].ID})
		}
	}
	return nil
}

func (m *Model) moveTask(goalID, taskID string, to kanban.Target) tea.Cmd {
	move, ok := m.svc.MoveTask(goalID, taskID, to)
	if !ok {
		return nil
	}
	m.columnID, m.taskID = move.ToColumn, taskID
	return m.changed(goalID, describe(kanban.Result{Kind: kanban.KindTask, Task: move}))
}

func (m *Model) errOr(err error, goalID, status string) tea.Cmd {
	if err != nil {
		return events.ErrorCmd(err)
	}
	m.Sync()
	return m.changed(goalID, status)
}

func (m *Model) applyPrompt(msg events.PromptSubmitMsg) tea.Cmd {
	ref := msg.Ref
	switch msg.Action {
	case events.PromptAddGoal:
		g, err := m.svc.AddGoal(msg.Value, kanban.DefaultGoalColor)
		if err != nil {
			return events.ErrorCmd(err)
		}
		m.Select(g.ID)
		return m.changed(g.ID, "Goal added")
	case events.PromptRenameGoal:
		return m.errOr(m.svc.RenameGoal(ref.GoalID, msg.Value), ref.GoalID, "Goal renamed")
	case events.PromptAddColumn:
		col, err := m.svc.AddColumn(ref.GoalID, msg.Value)
		if err != nil {
			return events.ErrorCmd(err)
		}
		m.columnID, m.taskID = col.ID, ""
		return m.changed(ref.GoalID, "Column added")
	case events.PromptRenameColumn:
		return m.errOr(m.svc.RenameColumn(ref.GoalID, ref.ColumnID, msg.Value), ref.GoalID, "Column renamed")
	case events.PromptAddTask:
		t, err := m.svc.AddTask(ref.GoalID, ref.ColumnID, msg.Value, "")
		if err != nil {
			return events.ErrorCmd(err)
		}
		m.columnID, m.taskID = ref.ColumnID, t.ID
		return m.changed(ref.GoalID, "Task added")
	case events.PromptEditTask:
		desc := ""
		if g, ok := m.svc.Goal(ref.GoalID); ok {
			if t, found := g.Task(ref.TaskID); found {
				desc = t.Description
			}
		}
		return m.errOr(m.svc.EditTask(ref.GoalID, ref.TaskID, msg.Value, desc), ref.GoalID, "Task updated")
	}
	return nil
}

func (m *Model) applyConfirm(accepted bool) tea.Cmd {
	if !accepted {
		m.svc.CancelDeletion()
		return events.StatusCmd("Kept")
	}
	removed, err := m.svc.ConfirmDeletion()
	if err != nil {
		if errors.Is(err, kanban.ErrNothingPending) {
			return nil
		}
		return events.ErrorCmd(err)
	}
	m.Sync()
	return m.changed(removed.GoalID, fmt.Sprintf("Deleted %q", removed.Title))
}

// View implements ui.Component.
func (m *Model) View() string {
	b := m.bounds
	if b.Empty() {
		return ""
	}
	board := m.svc.Snapshot()
	l := computeLayout(b, board, m.goalID)
	preview, dragging := m.svc.ActiveDrag()

	sidebar := m.sidebar(board, l.sidebar, preview, dragging)
	rows := make([]string, b.Height)
	for i := range rows {
		line := ""
		if i < len(sidebar) {
			line = sidebar[i]
		}
		rows[i] = fit(line, l.sidebar) + " "
	}

	if g, _, ok := board.Goal(m.goalID); ok {
		var over kanban.DragID
		if dragging {
			if r, hit := l.hit(m.pointer.X, m.pointer.Y); hit {
				over = r.drop()
			}
		}
		for _, col := range g.Columns {
			lines := m.column(col, l.column, preview, dragging)
			border := m.styles.Column
			if dragging && preview.Kind != kanban.KindGoal && m.targets(g, col, over) {
				border = m.styles.DropTarget
			}
			for i, line := range box(lines, l.column, b.Height, border) {
				rows[i] += line + " "
			}
		}
		if len(g.Columns) < kanban.MaxColumns && b.Height > 1 {
			rows[1] += m.styles.Empty.Render(fit("+ Column", addColumnW))
		}
	} else if b.Height > 2 {
		rows[2] += m.styles.Empty.Render("No goals yet. Press n to add one.")
	}

	view := strings.Join(rows, "\n")
	if dragging {
		ghost := theme.Solid(preview.Color).Padding(0, 1).Render(preview.Title)
		view = overlay.Compose(view, b.Width, b.Height, ghost, overlay.At(m.pointer.X-b.X+1, m.pointer.Y-b.Y))
	}
	return view
}

// targets reports whether dropping on over lands in col.
func (m *Model) targets(g *kanban.Goal, col kanban.Column, over kanban.DragID) bool {
	kind, id, ok := over.Parse()
	if !ok {
		return false
	}
	switch kind {
	case kanban.KindColumn:
		return id == col.ID
	case kanban.KindTask:
		ci, _, found := g.FindTask(id)
		return found && g.Columns[ci].ID == col.ID
	}
	return false
}

func (m *Model) sidebar(board kanban.Board, w int, preview kanban.Preview, dragging bool) []string {
	lines := []string{m.styles.ColumnTitle.Render("Goals"), ""}
	for _, g := range board.Goals {
		label := theme.Accent(g.Color).Render("●") + " " + countLabel(g.Title, g.TaskCount())
		style := m.styles.Goal
		switch {
		case dragging && preview.Kind == kanban.KindGoal && preview.ID == kanban.GoalDragID(g.ID):
			style = m.styles.Ghost
		case g.ID == m.goalID:
			style = m.styles.SelectedGoal
		}
		lines = append(lines, style.Render(fit(label, w-2)))
	}
	if len(board.Goals) < kanban.MaxGoals {
		lines = append(lines, "", m.styles.Empty.Render("+ New goal"))
	}
	return lines
}

func (m *Model) column(col kanban.Column, w int, preview kanban.Preview, dragging bool) []string {
	inner := w - 2
	header := theme.Accent(col.Color).Render("■ ") + m.styles.ColumnTitle.Render(countLabel(col.Title, len(col.Tasks)))
	if col.ID == m.columnID {
		header = m.styles.Selected.Render("▸ ") + header
	}
	lines := []string{header, ""}
	for _, t := range col.Tasks {
		text := fit(" "+t.Title, inner)
		var card string
		switch {
		case dragging && preview.ID == kanban.TaskDragID(t.ID):
			card = m.styles.Ghost.Render(text)
		case t.ID == m.taskID && col.ID == m.columnID:
			card = theme.Solid(t.Color).Bold(true).Render(text)
		default:
			card = theme.Fill(t.Color).Render(text)
		}
		lines = append(lines, card)
	}
	if len(col.Tasks) == 0 {
		lines = append(lines, m.styles.Empty.Render("Drop tasks here"))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.styles.Empty.Render(addTaskLabel))
	return lines
}

// Help is the key summary shown in the footer.
const Help = "tab goal  n/R/X goal  c/r/D column  a/e/x task  H/L move  p/P color  drag to reorder"

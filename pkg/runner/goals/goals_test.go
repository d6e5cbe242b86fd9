package goals

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/palette"
)

func init() {
	color.NoColor = true
}

func newService(t *testing.T) *app.Service {
	t.Helper()
	svc := app.New(nil, app.Options{SaveDebounce: time.Hour})
	t.Cleanup(svc.Close)
	return svc
}

func TestAddThenList(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	var buf bytes.Buffer
	add := Add{Service: svc, Title: "  Launch ", Out: &buf}
	require.NoError(t, add.Do(ctx))
	require.Contains(t, buf.String(), "● Launch (")

	goals := svc.Snapshot().Goals
	require.Len(t, goals, 1)
	require.Equal(t, kanban.DefaultGoalColor, goals[0].Color)

	buf.Reset()
	get := Get{Service: svc, Out: &buf}
	require.NoError(t, get.Do(ctx))
	require.Contains(t, buf.String(), "Goals")
	require.Contains(t, buf.String(), "Launch")
}

func TestGetOneGoalAsJSON(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	g, err := svc.AddGoal("Health", palette.Green)
	require.NoError(t, err)

	var buf bytes.Buffer
	get := Get{Service: svc, GoalID: g.ID, JSON: true, Out: &buf}
	require.NoError(t, get.Do(ctx))

	var got kanban.Goal
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, g.ID, got.ID)
	require.Len(t, got.Columns, 3)
}

func TestGetUnknownGoal(t *testing.T) {
	get := Get{Service: newService(t), GoalID: "nope", Out: &bytes.Buffer{}}
	require.ErrorIs(t, get.Do(context.Background()), kanban.ErrNotFound)
}

func TestAddRejectsBlankTitle(t *testing.T) {
	add := Add{Service: newService(t), Title: "   ", Out: &bytes.Buffer{}}
	require.ErrorIs(t, add.Do(context.Background()), kanban.ErrTitleRequired)
}

func TestNoService(t *testing.T) {
	require.ErrorIs(t, (&Get{}).Do(context.Background()), ErrNoService)
	require.ErrorIs(t, (&Add{}).Do(context.Background()), ErrNoService)
}

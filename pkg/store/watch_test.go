package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/tempo/pkg/kanban"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsGoalChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	g, err := kanban.NewGoal("Run a marathon", "")
	if err != nil {
		t.Fatalf("new goal: %v", err)
	}
	if err := p.SaveGoal(g); err != nil {
		t.Fatalf("save goal: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventGoalChanged {
				if evt.GoalID != g.ID {
					t.Fatalf("expected goal %q, got %q", g.ID, evt.GoalID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for goal change event")
		}
	}
}

func TestPersistenceWatchEmitsOrderChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := p.SaveGoalOrder([]string{"a", "b"}); err != nil {
		t.Fatalf("save order: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventOrderChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for order change event")
		}
	}
}

func TestClassify(t *testing.T) {
	p := &persistence{basePath: "/data"}
	tests := map[string]Event{
		"/data/.order.json": {Type: EventOrderChanged},
		"/data/goals/abc":   {Type: EventGoalChanged, GoalID: "abc"},
		"/data/tempo.log":   {Type: EventInvalidated},
		"/data":             {Type: EventInvalidated},
		"/data/goals/x.tmp": {Type: EventInvalidated},
	}
	for path, want := range tests {
		if got := p.classify(path); got != want {
			t.Errorf("classify(%q) = %+v, want %+v", path, got, want)
		}
	}
}

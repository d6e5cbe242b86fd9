package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/tempo/pkg/kanban"
)

// Persistence stores goals and their display order.
type Persistence interface {
	LoadGoals(ctx context.Context) ([]kanban.Goal, error)
	SaveGoal(g kanban.Goal) error
	DeleteGoal(id string) error
	SaveGoalOrder(ids []string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Option configures Load.
type Option func(*persistence)

// WithLogger reports unreadable records to l.
func WithLogger(l *zap.Logger) Option {
	return func(p *persistence) {
		if l != nil {
			p.log = l
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		settings, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = settings
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

const (
	goalsDir  = "goals"
	orderFile = ".order.json"
)

func (p *persistence) LoadGoals(ctx context.Context) ([]kanban.Goal, error) {
	byID := make(map[string]kanban.Goal)
	for key := range p.d.Keys(ctx.Done()) {
		id, ok := goalIDFromKey(key)
		if !ok {
			continue
		}
		g, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable goal", zap.String("key", key), zap.Error(err))
			continue
		}
		if g.ID == "" {
			g.ID = id
		}
		byID[g.ID] = g
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	order, err := p.loadOrder()
	if err != nil {
		return nil, fmt.Errorf("store: load goal order: %w", err)
	}
	return mergeOrder(byID, order), nil
}

// mergeOrder lists goals in saved order, drops order entries with no goal,
// and appends goals missing from the order sorted by id.
func mergeOrder(byID map[string]kanban.Goal, order []string) []kanban.Goal {
	goals := make([]kanban.Goal, 0, len(byID))
	seen := make(map[string]struct{}, len(byID))
	for _, id := range order {
		g, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		goals = append(goals, g)
	}
	var rest []string
	for id := range byID {
		if _, ok := seen[id]; !ok {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		goals = append(goals, byID[id])
	}
	return goals
}

// read goes to disk rather than the cache; other processes write the same
// directory.
func (p *persistence) read(key string) (kanban.Goal, error) {
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		return kanban.Goal{}, err
	}
	defer rc.Close()
	val, err := io.ReadAll(rc)
	if err != nil {
		return kanban.Goal{}, err
	}
	var g kanban.Goal
	if err := json.Unmarshal(val, &g); err != nil {
		return kanban.Goal{}, err
	}
	for i := range g.Columns {
		if g.Columns[i].Tasks == nil {
			g.Columns[i].Tasks = []kanban.Task{}
		}
	}
	return g, nil
}

func (p *persistence) SaveGoal(g kanban.Goal) error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("store: goal id required")
	}
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("store: encode goal: %w", err)
	}
	if err := p.d.Write(toKey(g.ID), data); err != nil {
		return fmt.Errorf("store: write goal %s: %w", g.ID, err)
	}
	return nil
}

func (p *persistence) DeleteGoal(id string) error {
	if err := p.d.Erase(toKey(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: delete goal %s: %w", id, err)
	}
	return nil
}

func (p *persistence) SaveGoalOrder(ids []string) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	path := p.orderPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write goal order: %w", err)
	}
	return os.Rename(tmp, path)
}

func (p *persistence) orderPath() string {
	return filepath.Join(p.basePath, orderFile)
}

func (p *persistence) loadOrder() ([]string, error) {
	data, err := os.ReadFile(p.orderPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	dir, file, ok := strings.Cut(s, "/")
	if !ok {
		return &diskv.PathKey{Path: []string{}, FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{dir},
		FileName: file,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}

// toKey makes `goals/<id>`.
func toKey(id string) string {
	return goalsDir + "/" + id
}

func goalIDFromKey(key string) (string, bool) {
	dir, id, ok := strings.Cut(key, "/")
	if !ok || dir != goalsDir || id == "" || strings.HasSuffix(id, ".tmp") {
		return "", false
	}
	return id, true
}

package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	goalsdomain "smartsave-go/internal/domain/goals"
	"smartsave-go/pkg/logger"
)

// GoalsRepository keeps the whole goal list in one JSON file, rewritten on
// every committed transaction.
type GoalsRepository struct {
	path     string
	seedPath string
	log      logger.Logger

	mu sync.Mutex
}

func NewGoalsRepository(path, seedPath string, log logger.Logger) *GoalsRepository {
	return &GoalsRepository{
		path:     path,
		seedPath: seedPath,
		log:      log.With("store", "file", "path", path),
	}
}

func (r *GoalsRepository) Transaction(ctx context.Context, fn func(goalsdomain.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, normalized, err := r.load()
	if err != nil {
		return err
	}

	tx := &goalsTx{items: items}
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty && !normalized {
		return nil
	}
	return r.save(tx.items)
}

func (r *GoalsRepository) ListGoals(ctx context.Context) ([]goalsdomain.Goal, error) {
	var result []goalsdomain.Goal
	err := r.read(ctx, func(tx *goalsTx) error {
		result, _ = tx.ListGoals(ctx)
		return nil
	})
	return result, err
}

func (r *GoalsRepository) GetGoal(ctx context.Context, id string) (*goalsdomain.Goal, error) {
	var result *goalsdomain.Goal
	err := r.read(ctx, func(tx *goalsTx) error {
		var err error
		result, err = tx.GetGoal(ctx, id)
		return err
	})
	return result, err
}

func (r *GoalsRepository) CreateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	return r.Transaction(ctx, func(tx goalsdomain.Repository) error {
		return tx.CreateGoal(ctx, goal)
	})
}

func (r *GoalsRepository) UpdateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	return r.Transaction(ctx, func(tx goalsdomain.Repository) error {
		return tx.UpdateGoal(ctx, goal)
	})
}

func (r *GoalsRepository) DeleteGoal(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.Transaction(ctx, func(tx goalsdomain.Repository) error {
		var err error
		deleted, err = tx.DeleteGoal(ctx, id)
		return err
	})
	return deleted, err
}

// Snapshot loads the goals like ListGoals but never writes the file back,
// so ids assigned to legacy records exist only in the returned copy.
func (r *GoalsRepository) Snapshot(ctx context.Context) ([]goalsdomain.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, _, err := r.load()
	if err != nil {
		return nil, err
	}
	return (&goalsTx{items: items}).ListGoals(ctx)
}

// read never fails because ids could not be written back; the next
// successful write persists them.
func (r *GoalsRepository) read(ctx context.Context, fn func(*goalsTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, normalized, err := r.load()
	if err != nil {
		return err
	}
	if normalized {
		if err := r.save(items); err != nil {
			r.log.Warn("goals: persisting assigned ids failed", "err", err)
		}
	}
	return fn(&goalsTx{items: items})
}

func (r *GoalsRepository) load() ([]goalsdomain.Goal, bool, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		data, err = r.seed()
	}
	if err != nil {
		return nil, false, fmt.Errorf("read goals: %w", err)
	}
	if len(data) == 0 {
		return []goalsdomain.Goal{}, false, nil
	}

	var items []goalsdomain.Goal
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("decode goals: %w", err)
	}
	if items == nil {
		items = []goalsdomain.Goal{}
	}

	return items, normalize(items), nil
}

// seed returns the initial file contents when the data file does not exist
// yet: the seed file if configured, otherwise nothing.
func (r *GoalsRepository) seed() ([]byte, error) {
	if r.seedPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(r.seedPath)
	if errors.Is(err, os.ErrNotExist) {
		r.log.Warn("goals: seed file missing", "seed", r.seedPath)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.log.Info("goals: seeding data file", "seed", r.seedPath)
	return data, nil
}

func (r *GoalsRepository) save(items []goalsdomain.Goal) error {
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".goals-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write goals: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace goals file: %w", err)
	}

	r.log.Debug("goals: saved", "count", len(items))
	return nil
}

// normalize fills in what older files lack: ids, positions and non-nil
// history. It reports whether anything had to be assigned.
func normalize(items []goalsdomain.Goal) bool {
	changed := false
	for i := range items {
		goal := &items[i]
		goal.Position = i
		if goal.ID == "" {
			goal.ID = uuid.NewString()
			changed = true
		}
		if goal.History == nil {
			goal.History = []goalsdomain.Transaction{}
		}
		for j := range goal.History {
			if goal.History[j].ID == "" {
				goal.History[j].ID = uuid.NewString()
				changed = true
			}
			goal.History[j].GoalID = goal.ID
		}
	}
	return changed
}

type goalsTx struct {
	items []goalsdomain.Goal
	dirty bool
}

func (t *goalsTx) Transaction(ctx context.Context, fn func(goalsdomain.Repository) error) error {
	return fn(t)
}

func (t *goalsTx) ListGoals(ctx context.Context) ([]goalsdomain.Goal, error) {
	result := make([]goalsdomain.Goal, 0, len(t.items))
	for _, goal := range t.items {
		result = append(result, cloneGoal(goal))
	}
	return result, nil
}

func (t *goalsTx) GetGoal(ctx context.Context, id string) (*goalsdomain.Goal, error) {
	idx := t.indexOf(id)
	if idx < 0 {
		return nil, goalsdomain.ErrGoalNotFound
	}
	goal := cloneGoal(t.items[idx])
	return &goal, nil
}

func (t *goalsTx) CreateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	if t.indexOf(goal.ID) >= 0 {
		return fmt.Errorf("goal %s already exists", goal.ID)
	}
	if goal.History == nil {
		goal.History = []goalsdomain.Transaction{}
	}
	goal.Position = len(t.items)
	t.items = append(t.items, cloneGoal(*goal))
	t.dirty = true
	return nil
}

func (t *goalsTx) UpdateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	idx := t.indexOf(goal.ID)
	if idx < 0 {
		return goalsdomain.ErrGoalNotFound
	}
	updated := cloneGoal(*goal)
	updated.Position = t.items[idx].Position
	t.items[idx] = updated
	t.dirty = true
	return nil
}

func (t *goalsTx) DeleteGoal(ctx context.Context, id string) (bool, error) {
	idx := t.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	t.items = append(t.items[:idx], t.items[idx+1:]...)
	for i := range t.items {
		t.items[i].Position = i
	}
	t.dirty = true
	return true, nil
}

func (t *goalsTx) indexOf(id string) int {
	for i := range t.items {
		if t.items[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneGoal(goal goalsdomain.Goal) goalsdomain.Goal {
	cloned := goal
	cloned.History = append([]goalsdomain.Transaction{}, goal.History...)
	if goal.LastTransaction != nil {
		last := *goal.LastTransaction
		cloned.LastTransaction = &last
	}
	return cloned
}

// Package sqlite stores goals in a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	goalsdomain "smartsave-go/internal/domain/goals"

	_ "modernc.org/sqlite" // register sqlite driver
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GoalsRepository implements the goal store on SQLite.
type GoalsRepository struct {
	db *sql.DB
	q  querier
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*GoalsRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening goals db: %w", err)
	}
	// A single connection serializes writers and keeps pragmas consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &GoalsRepository{db: db, q: db}, nil
}

// Close closes the database.
func (r *GoalsRepository) Close() error {
	return r.db.Close()
}

func (r *GoalsRepository) Transaction(ctx context.Context, fn func(goalsdomain.Repository) error) error {
	if _, inTx := r.q.(*sql.Tx); inTx {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&GoalsRepository{db: r.db, q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *GoalsRepository) ListGoals(ctx context.Context) ([]goalsdomain.Goal, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name, target, saved, deadline, icon, position, created_at
		FROM goals ORDER BY position, created_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []goalsdomain.Goal{}
	index := make(map[string]int)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		index[goal.ID] = len(items)
		items = append(items, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	history, err := r.loadHistory(ctx, "")
	if err != nil {
		return nil, err
	}
	for goalID, txns := range history {
		if i, ok := index[goalID]; ok {
			items[i].History = txns
		}
	}
	for i := range items {
		fillDerived(&items[i])
	}
	return items, nil
}

func (r *GoalsRepository) GetGoal(ctx context.Context, id string) (*goalsdomain.Goal, error) {
	row := r.q.QueryRowContext(ctx, `SELECT id, name, target, saved, deadline, icon, position, created_at
		FROM goals WHERE id = ?`, id)
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goalsdomain.ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	history, err := r.loadHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	goal.History = history[id]
	fillDerived(&goal)
	return &goal, nil
}

func (r *GoalsRepository) CreateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	return r.Transaction(ctx, func(repo goalsdomain.Repository) error {
		tx := repo.(*GoalsRepository).q

		var next int
		if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position) + 1, 0) FROM goals").Scan(&next); err != nil {
			return err
		}
		goal.Position = next
		if goal.CreatedAt.IsZero() {
			goal.CreatedAt = time.Now().UTC()
		}

		_, err := tx.ExecContext(ctx, `INSERT INTO goals
			(id, name, target, saved, deadline, icon, position, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			goal.ID, goal.Name, goal.Target, goal.Saved, goal.Deadline, goal.Icon, goal.Position, formatTime(goal.CreatedAt),
		)
		if err != nil {
			return err
		}
		return insertHistory(ctx, tx, goal)
	})
}

func (r *GoalsRepository) UpdateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	return r.Transaction(ctx, func(repo goalsdomain.Repository) error {
		tx := repo.(*GoalsRepository).q

		result, err := tx.ExecContext(ctx, `UPDATE goals
			SET name = ?, target = ?, saved = ?, deadline = ?, icon = ?
			WHERE id = ?`,
			goal.Name, goal.Target, goal.Saved, goal.Deadline, goal.Icon, goal.ID,
		)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return goalsdomain.ErrGoalNotFound
		}
		return insertHistory(ctx, tx, goal)
	})
}

func (r *GoalsRepository) DeleteGoal(ctx context.Context, id string) (bool, error) {
	result, err := r.q.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// loadHistory returns deposits grouped by goal, newest first. An empty
// goalID loads every goal's history.
func (r *GoalsRepository) loadHistory(ctx context.Context, goalID string) (map[string][]goalsdomain.Transaction, error) {
	query := "SELECT id, goal_id, amount, date, time, at FROM goal_transactions"
	var args []any
	if goalID != "" {
		query += " WHERE goal_id = ?"
		args = append(args, goalID)
	}
	query += " ORDER BY rowid DESC"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string][]goalsdomain.Transaction)
	for rows.Next() {
		var txn goalsdomain.Transaction
		var at string
		if err := rows.Scan(&txn.ID, &txn.GoalID, &txn.Amount, &txn.Date, &txn.Time, &at); err != nil {
			return nil, err
		}
		txn.At = parseTime(at)
		result[txn.GoalID] = append(result[txn.GoalID], txn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for id := range result {
		txns := result[id]
		sort.SliceStable(txns, func(i, j int) bool {
			return txns[i].At.After(txns[j].At)
		})
	}
	return result, nil
}

// insertHistory stores history entries that are not in the table yet.
// Entries are inserted oldest first so rowid order matches deposit order.
func insertHistory(ctx context.Context, q querier, goal *goalsdomain.Goal) error {
	for i := len(goal.History) - 1; i >= 0; i-- {
		txn := &goal.History[i]
		txn.GoalID = goal.ID
		_, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO goal_transactions
			(id, goal_id, amount, date, time, at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			txn.ID, txn.GoalID, txn.Amount, txn.Date, txn.Time, formatTime(txn.At),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (goalsdomain.Goal, error) {
	var goal goalsdomain.Goal
	var createdAt string
	if err := row.Scan(&goal.ID, &goal.Name, &goal.Target, &goal.Saved, &goal.Deadline, &goal.Icon, &goal.Position, &createdAt); err != nil {
		return goalsdomain.Goal{}, err
	}
	goal.CreatedAt = parseTime(createdAt)
	return goal, nil
}

func fillDerived(goal *goalsdomain.Goal) {
	if goal.History == nil {
		goal.History = []goalsdomain.Transaction{}
	}
	if newest, ok := goal.Newest(); ok {
		goal.LastTransaction = &newest
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

package goals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	goalsdomain "smartsave-go/internal/domain/goals"
)

// historyOrder puts the newest deposit first. Rows without a timestamp tie
// on at and fall back to insertion order.
const historyOrder = "at DESC, seq DESC"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(goalsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListGoals(ctx context.Context) ([]goalsdomain.Goal, error) {
	var items []goalsdomain.Goal
	if err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order(historyOrder)
		}).
		Order("position asc, created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}

	for i := range items {
		fillDerived(&items[i])
	}
	return items, nil
}

// GetGoal locks the goal row for the rest of the surrounding transaction.
func (r *PostgresRepository) GetGoal(ctx context.Context, id string) (*goalsdomain.Goal, error) {
	if !validID(id) {
		return nil, goalsdomain.ErrGoalNotFound
	}

	var goal goalsdomain.Goal
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goalsdomain.ErrGoalNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("goal_id = ?", id).
		Order(historyOrder).
		Find(&goal.History).Error; err != nil {
		return nil, err
	}

	fillDerived(&goal)
	return &goal, nil
}

func (r *PostgresRepository) CreateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	return r.Transaction(ctx, func(repo goalsdomain.Repository) error {
		tx := repo.(*PostgresRepository).db

		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext('goals.position'))").Error; err != nil {
			return err
		}

		var next int
		if err := tx.Model(&goalsdomain.Goal{}).
			Select("COALESCE(MAX(position) + 1, 0)").
			Scan(&next).Error; err != nil {
			return err
		}
		goal.Position = next

		if err := tx.Omit("History").Create(goal).Error; err != nil {
			return err
		}
		return insertHistory(tx, goal)
	})
}

// UpdateGoal writes the goal's scalar fields and appends any history rows
// not yet stored. Deposits are never edited or removed individually.
func (r *PostgresRepository) UpdateGoal(ctx context.Context, goal *goalsdomain.Goal) error {
	if !validID(goal.ID) {
		return goalsdomain.ErrGoalNotFound
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&goalsdomain.Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"name":     goal.Name,
			"target":   goal.Target,
			"saved":    goal.Saved,
			"deadline": goal.Deadline,
			"icon":     goal.Icon,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return goalsdomain.ErrGoalNotFound
	}
	return insertHistory(db, goal)
}

func (r *PostgresRepository) DeleteGoal(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&goalsdomain.Goal{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// insertHistory stores history rows not yet present, oldest first, one
// statement per row so seq follows deposit order.
func insertHistory(db *gorm.DB, goal *goalsdomain.Goal) error {
	for i := len(goal.History) - 1; i >= 0; i-- {
		goal.History[i].GoalID = goal.ID
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&goal.History[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// validID reports whether id can match the uuid primary key. Postgres
// raises 22P02 for anything else.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func fillDerived(goal *goalsdomain.Goal) {
	if goal.History == nil {
		goal.History = []goalsdomain.Transaction{}
	}
	if newest, ok := goal.Newest(); ok {
		goal.LastTransaction = &newest
	}
}

package goals

import "context"

// Repository persists the goal collection. Transaction runs fn against a
// view whose reads and writes commit together; implementations serialize
// concurrent transactions.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListGoals(ctx context.Context) ([]Goal, error)
	GetGoal(ctx context.Context, id string) (*Goal, error)
	CreateGoal(ctx context.Context, goal *Goal) error
	UpdateGoal(ctx context.Context, goal *Goal) error
	DeleteGoal(ctx context.Context, id string) (bool, error)
}

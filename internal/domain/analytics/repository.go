package analytics

import (
	"context"

	"smartsave-go/internal/domain/goals"
)

type GoalSource interface {
	ListGoals(ctx context.Context) ([]goals.Goal, error)
}

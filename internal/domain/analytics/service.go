package analytics

import (
	"context"
	"time"

	"smartsave-go/internal/domain/goals"
	"smartsave-go/pkg/logger"
)

type Service struct {
	source GoalSource
	log    logger.Logger
	now    func() time.Time
}

func NewService(source GoalSource, log logger.Logger) *Service {
	return &Service{
		source: source,
		log:    log,
		now:    time.Now,
	}
}

// Dashboard loads every goal and derives the per-request view. A failing
// store yields an empty dashboard rather than an error.
func (s *Service) Dashboard(ctx context.Context) Dashboard {
	return s.Build(s.load(ctx))
}

func (s *Service) Build(list []goals.Goal) Dashboard {
	now := s.now()
	streak := Streak(list, now)

	views := make([]GoalView, 0, len(list))
	for _, goal := range list {
		views = append(views, view(goal, now))
	}

	return Dashboard{
		Goals:       views,
		Streak:      streak,
		Badges:      Badges(list, streak),
		Reminder:    Reminder(list, now),
		Monthly:     MonthlyTotals(list, now),
		TotalSaved:  TotalSaved(list),
		GeneratedAt: now,
	}
}

func (s *Service) View(goal goals.Goal) GoalView {
	return view(goal, s.now())
}

func view(goal goals.Goal, now time.Time) GoalView {
	return GoalView{
		Goal:        goal,
		Percent:     Percent(goal.Saved, goal.Target),
		Nudge:       Nudge(goal.Saved, goal.Target),
		Projection:  Projection(goal, now),
		IsCompleted: goal.IsCompleted(),
	}
}

func (s *Service) DepositSummary(ctx context.Context, goal goals.Goal) DepositSummary {
	now := s.now()

	list := s.load(ctx)
	if len(list) == 0 {
		list = []goals.Goal{goal}
	}

	return DepositSummary{
		Saved:       goal.Saved,
		Target:      goal.Target,
		Percent:     Percent(goal.Saved, goal.Target),
		Nudge:       Nudge(goal.Saved, goal.Target),
		Projection:  Projection(goal, now),
		Streak:      Streak(list, now),
		IsCompleted: goal.IsCompleted(),
	}
}

func (s *Service) load(ctx context.Context) []goals.Goal {
	list, err := s.source.ListGoals(ctx)
	if err != nil {
		s.log.InternalError("analytics: load goals failed", err)
		return []goals.Goal{}
	}
	return list
}

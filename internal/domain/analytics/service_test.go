package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartsave-go/internal/domain/goals"
	"smartsave-go/pkg/logger"
)

type fakeGoalSource struct {
	goals []goals.Goal
	err   error
	calls int
}

func (f *fakeGoalSource) ListGoals(ctx context.Context) ([]goals.Goal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.goals, nil
}

func newTestAnalytics(source GoalSource) *Service {
	svc := NewService(source, logger.Nop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestDashboardHalfwayScenario(t *testing.T) {
	source := &fakeGoalSource{goals: []goals.Goal{{
		ID:      "g-1",
		Name:    "Vacation",
		Target:  1000,
		Saved:   500,
		History: []goals.Transaction{depositAt(500, testNow.Add(-time.Hour))},
	}}}
	svc := newTestAnalytics(source)

	dashboard := svc.Dashboard(context.Background())

	if len(dashboard.Goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(dashboard.Goals))
	}
	view := dashboard.Goals[0]
	if view.Percent != 50 {
		t.Fatalf("expected percent 50, got %d", view.Percent)
	}
	if view.Nudge != Nudge(50, 100) {
		t.Fatalf("expected halfway nudge, got %q", view.Nudge)
	}
	if view.IsCompleted {
		t.Fatalf("expected goal not completed")
	}
	if dashboard.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", dashboard.Streak)
	}
	if got := badgeNames(dashboard.Badges); got != "First Step" {
		t.Fatalf("expected only First Step, got %s", got)
	}
	if dashboard.TotalSaved != 500 {
		t.Fatalf("expected total 500, got %d", dashboard.TotalSaved)
	}
	if view.Projection != "~1 days to go" {
		t.Fatalf("unexpected projection %q", view.Projection)
	}
}

func TestDashboardSoftFailsOnStoreError(t *testing.T) {
	svc := newTestAnalytics(&fakeGoalSource{err: errors.New("unreadable file")})

	dashboard := svc.Dashboard(context.Background())

	if len(dashboard.Goals) != 0 || dashboard.Streak != 0 || len(dashboard.Badges) != 0 {
		t.Fatalf("expected empty dashboard, got %+v", dashboard)
	}
	if dashboard.Reminder != "" {
		t.Fatalf("expected no reminder, got %q", dashboard.Reminder)
	}
}

func TestDepositSummaryUsesAllGoalsForStreak(t *testing.T) {
	deposited := goals.Goal{
		ID:      "g-1",
		Target:  200,
		Saved:   200,
		History: []goals.Transaction{depositAt(200, testNow)},
	}
	source := &fakeGoalSource{goals: []goals.Goal{
		deposited,
		{ID: "g-2", Target: 100, Saved: 10, History: []goals.Transaction{depositAt(10, daysAgo(1))}},
	}}
	svc := newTestAnalytics(source)

	summary := svc.DepositSummary(context.Background(), deposited)

	if summary.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", summary.Streak)
	}
	if !summary.IsCompleted || summary.Percent != 100 || summary.Projection != ProjectionReached {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestDepositSummaryFallsBackToDepositedGoal(t *testing.T) {
	deposited := goals.Goal{Target: 200, Saved: 50, History: []goals.Transaction{depositAt(50, testNow)}}
	svc := newTestAnalytics(&fakeGoalSource{err: errors.New("locked")})

	summary := svc.DepositSummary(context.Background(), deposited)

	if summary.Streak != 1 {
		t.Fatalf("expected streak 1 from the deposited goal, got %d", summary.Streak)
	}
	if summary.Percent != 25 {
		t.Fatalf("expected percent 25, got %d", summary.Percent)
	}
}

func TestViewCompletedGoal(t *testing.T) {
	svc := newTestAnalytics(&fakeGoalSource{})

	view := svc.View(goals.Goal{ID: "g-1", Target: 100, Saved: 150})

	if view.Percent != 100 || !view.IsCompleted || view.Projection != ProjectionReached {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.ID != "g-1" {
		t.Fatalf("expected embedded goal, got %+v", view.Goal)
	}
}

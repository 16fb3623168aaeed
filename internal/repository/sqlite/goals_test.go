package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	goalsdomain "smartsave-go/internal/domain/goals"
)

func openTestRepo(t *testing.T) *GoalsRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "nested", "goals.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCreateAndListGoals(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Trip", "Laptop"} {
		goal := goalsdomain.Goal{ID: name + "-id", Name: name, Target: 1000, Deadline: goalsdomain.DefaultDeadline}
		if err := repo.CreateGoal(ctx, &goal); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	items, err := repo.ListGoals(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Trip" || items[1].Position != 1 {
		t.Fatalf("unexpected goals %+v", items)
	}
	if items[0].History == nil || items[0].LastTransaction != nil {
		t.Fatalf("expected empty history and no last transaction, got %+v", items[0])
	}
}

func TestDepositsNewestFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	svc := goalsdomain.NewService(repo, goalsdomain.PaymentConfig{})

	created, err := svc.CreateGoal(ctx, goalsdomain.CreateGoalInput{Name: "Bike", Target: 900})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, amount := range []int64{100, 250} {
		if _, _, err := svc.AddDeposit(ctx, created.ID, amount); err != nil {
			t.Fatalf("deposit %d: %v", amount, err)
		}
	}

	goal, err := repo.GetGoal(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if goal.Saved != 350 || len(goal.History) != 2 {
		t.Fatalf("unexpected goal %+v", goal)
	}
	if goal.History[0].Amount != 250 || goal.History[1].Amount != 100 {
		t.Fatalf("expected newest first, got %+v", goal.History)
	}
	if goal.LastTransaction == nil || goal.LastTransaction.Amount != 250 {
		t.Fatalf("unexpected last transaction %+v", goal.LastTransaction)
	}
	if time.Since(goal.History[0].At) > time.Minute {
		t.Fatalf("expected deposit timestamp to round trip, got %v", goal.History[0].At)
	}
}

func TestLegacyHistoryWithoutTimestamps(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	goal := goalsdomain.Goal{
		ID:     "g-1",
		Name:   "Goa",
		Target: 5000,
		Saved:  300,
		History: []goalsdomain.Transaction{
			{ID: "t-2", Amount: 200, Date: "30 Jan", Time: "18:02"},
			{ID: "t-1", Amount: 100, Date: "29 Jan", Time: "09:15"},
		},
	}
	if err := repo.CreateGoal(ctx, &goal); err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, err := repo.GetGoal(ctx, "g-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.History) != 2 || stored.History[0].ID != "t-2" || !stored.History[0].At.IsZero() {
		t.Fatalf("unexpected history %+v", stored.History)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	goal := goalsdomain.Goal{ID: "g-1", Name: "Car", Target: 100}
	if err := repo.CreateGoal(ctx, &goal); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx goalsdomain.Repository) error {
		current, err := tx.GetGoal(ctx, "g-1")
		if err != nil {
			return err
		}
		current.Saved = 80
		if err := tx.UpdateGoal(ctx, current); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	stored, err := repo.GetGoal(ctx, "g-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Saved != 0 {
		t.Fatalf("expected saved 0 after rollback, got %d", stored.Saved)
	}
}

func TestDeleteGoalCascades(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	goal := goalsdomain.Goal{
		ID:      "g-1",
		Name:    "Phone",
		Target:  100,
		Saved:   10,
		History: []goalsdomain.Transaction{{ID: "t-1", Amount: 10, Date: "01 Mar", Time: "10:00"}},
	}
	if err := repo.CreateGoal(ctx, &goal); err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := repo.DeleteGoal(ctx, "g-1")
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v, %v", deleted, err)
	}
	if _, err := repo.GetGoal(ctx, "g-1"); !errors.Is(err, goalsdomain.ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}

	var count int
	if err := repo.db.QueryRow("SELECT COUNT(*) FROM goal_transactions").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected history removed with the goal, got %d rows", count)
	}

	deleted, err = repo.DeleteGoal(ctx, "g-1")
	if err != nil || deleted {
		t.Fatalf("expected second delete to report false, got %v, %v", deleted, err)
	}
}

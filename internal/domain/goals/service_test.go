package goals

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

type fakeGoalsRepo struct {
	goals     []Goal
	txCalls   int
	updateErr error
}

func (r *fakeGoalsRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	r.txCalls++
	return fn(r)
}

func (r *fakeGoalsRepo) ListGoals(ctx context.Context) ([]Goal, error) {
	items := make([]Goal, len(r.goals))
	copy(items, r.goals)
	return items, nil
}

func (r *fakeGoalsRepo) GetGoal(ctx context.Context, id string) (*Goal, error) {
	for _, goal := range r.goals {
		if goal.ID == id {
			found := goal
			found.History = append([]Transaction(nil), goal.History...)
			return &found, nil
		}
	}
	return nil, ErrGoalNotFound
}

func (r *fakeGoalsRepo) CreateGoal(ctx context.Context, goal *Goal) error {
	goal.Position = len(r.goals)
	r.goals = append(r.goals, *goal)
	return nil
}

func (r *fakeGoalsRepo) UpdateGoal(ctx context.Context, goal *Goal) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.goals {
		if r.goals[i].ID == goal.ID {
			r.goals[i] = *goal
			return nil
		}
	}
	return ErrGoalNotFound
}

func (r *fakeGoalsRepo) DeleteGoal(ctx context.Context, id string) (bool, error) {
	for i := range r.goals {
		if r.goals[i].ID == id {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestService(repo Repository, now time.Time) *Service {
	svc := NewService(repo, PaymentConfig{UPIAddress: "saver@okaxis", PayeeName: "SmartSave"})
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateGoalDefaults(t *testing.T) {
	repo := &fakeGoalsRepo{}
	svc := newTestService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	goal, err := svc.CreateGoal(context.Background(), CreateGoalInput{Name: "  Laptop ", Target: 50000})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if goal.ID == "" {
		t.Fatalf("expected generated id")
	}
	if goal.Name != "Laptop" {
		t.Fatalf("expected trimmed name, got %q", goal.Name)
	}
	if goal.Deadline != DefaultDeadline {
		t.Fatalf("expected default deadline, got %q", goal.Deadline)
	}
	if goal.Saved != 0 || len(goal.History) != 0 || goal.LastTransaction != nil {
		t.Fatalf("expected fresh goal, got %+v", goal)
	}
	if len(repo.goals) != 1 {
		t.Fatalf("expected goal persisted, got %d", len(repo.goals))
	}
}

func TestCreateGoalValidation(t *testing.T) {
	svc := newTestService(&fakeGoalsRepo{}, time.Now())

	if _, err := svc.CreateGoal(context.Background(), CreateGoalInput{Name: " ", Target: 10}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.CreateGoal(context.Background(), CreateGoalInput{Name: "Bike", Target: 0}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}

func TestAddDepositPrependsHistory(t *testing.T) {
	repo := &fakeGoalsRepo{goals: []Goal{{
		ID:     "g-1",
		Name:   "Trip",
		Target: 1000,
		Saved:  100,
		History: []Transaction{
			{ID: "t-0", Amount: 100, Date: "08 Mar", Time: "10:00"},
		},
	}}}
	now := time.Date(2026, 3, 10, 18, 45, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	goal, txn, err := svc.AddDeposit(context.Background(), "g-1", 250)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.txCalls != 1 {
		t.Fatalf("expected a single transaction, got %d", repo.txCalls)
	}
	if goal.Saved != 350 {
		t.Fatalf("expected saved 350, got %d", goal.Saved)
	}
	if txn.Date != "10 Mar" || txn.Time != "18:45" || !txn.At.Equal(now) {
		t.Fatalf("unexpected transaction %+v", txn)
	}
	if len(goal.History) != 2 || goal.History[0].ID != txn.ID || goal.History[1].ID != "t-0" {
		t.Fatalf("expected newest first history, got %+v", goal.History)
	}
	if goal.LastTransaction == nil || goal.LastTransaction.ID != txn.ID {
		t.Fatalf("expected last transaction to be the deposit, got %+v", goal.LastTransaction)
	}
	if repo.goals[0].Saved != 350 {
		t.Fatalf("expected repo to hold updated goal, got %d", repo.goals[0].Saved)
	}
}

func TestAddDepositErrors(t *testing.T) {
	repo := &fakeGoalsRepo{goals: []Goal{{ID: "g-1", Name: "Trip", Target: 1000}}}
	svc := newTestService(repo, time.Now())

	if _, _, err := svc.AddDeposit(context.Background(), "g-1", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, _, err := svc.AddDeposit(context.Background(), "missing", 10); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}

	repo.updateErr = errors.New("disk full")
	if _, _, err := svc.AddDeposit(context.Background(), "g-1", 10); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAddDepositRejectsOverflow(t *testing.T) {
	repo := &fakeGoalsRepo{goals: []Goal{{ID: "g-1", Name: "Trip", Target: 1000, Saved: math.MaxInt64 - 5}}}
	svc := newTestService(repo, time.Now())

	if _, _, err := svc.AddDeposit(context.Background(), "g-1", 6); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if repo.goals[0].Saved != math.MaxInt64-5 || len(repo.goals[0].History) != 0 {
		t.Fatalf("expected goal untouched, got %+v", repo.goals[0])
	}
	if _, _, err := svc.AddDeposit(context.Background(), "g-1", 5); err != nil {
		t.Fatalf("expected deposit up to the limit, got %v", err)
	}
}

func TestDeleteGoalKeepsOtherIDs(t *testing.T) {
	repo := &fakeGoalsRepo{goals: []Goal{
		{ID: "a", Name: "A", Target: 1},
		{ID: "b", Name: "B", Target: 1},
		{ID: "c", Name: "C", Target: 1},
	}}
	svc := newTestService(repo, time.Now())

	if err := svc.DeleteGoal(context.Background(), "a"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	goal, err := svc.GetGoal(context.Background(), "c")
	if err != nil || goal.Name != "C" {
		t.Fatalf("expected goal c to stay addressable, got %+v, %v", goal, err)
	}
	if err := svc.DeleteGoal(context.Background(), "a"); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound on second delete, got %v", err)
	}
}

func TestPaymentLink(t *testing.T) {
	repo := &fakeGoalsRepo{goals: []Goal{{ID: "g-1", Name: "New Phone", Target: 1000}}}
	svc := newTestService(repo, time.Now())

	link, err := svc.PaymentLink(context.Background(), "g-1", 500)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "upi://pay?am=500&pa=saver%40okaxis&pn=SmartSave&tn=Savings+for+New+Phone"
	if link != want {
		t.Fatalf("expected %s, got %s", want, link)
	}

	if _, err := svc.PaymentLink(context.Background(), "g-1", -1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestImportGoalsSkipsExisting(t *testing.T) {
	repo := &fakeGoalsRepo{goals: []Goal{{ID: "a", Name: "Existing", Target: 10}}}
	svc := newTestService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	imported, err := svc.ImportGoals(context.Background(), []Goal{
		{ID: "a", Name: "Duplicate", Target: 10},
		{ID: "b", Name: "Trip", Target: 500, Saved: 50, History: []Transaction{{ID: "t-1", Amount: 50, Date: "01 Mar", Time: "10:00"}}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if imported != 1 {
		t.Fatalf("expected 1 imported goal, got %d", imported)
	}
	if len(repo.goals) != 2 || repo.goals[0].Name != "Existing" {
		t.Fatalf("unexpected goals %+v", repo.goals)
	}
	if len(repo.goals[1].History) != 1 || repo.goals[1].CreatedAt.IsZero() {
		t.Fatalf("expected history and created_at on imported goal, got %+v", repo.goals[1])
	}
}

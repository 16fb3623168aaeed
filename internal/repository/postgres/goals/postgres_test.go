package goals

import (
	"context"
	"errors"
	"testing"

	goalsdomain "smartsave-go/internal/domain/goals"
)

func TestMalformedIDIsNotFound(t *testing.T) {
	// The checks run before any query, so no connection is needed.
	repo := NewPostgres(nil)
	ctx := context.Background()

	for _, id := range []string{"0", "abc", ""} {
		if _, err := repo.GetGoal(ctx, id); !errors.Is(err, goalsdomain.ErrGoalNotFound) {
			t.Fatalf("GetGoal(%q): expected ErrGoalNotFound, got %v", id, err)
		}
		if err := repo.UpdateGoal(ctx, &goalsdomain.Goal{ID: id}); !errors.Is(err, goalsdomain.ErrGoalNotFound) {
			t.Fatalf("UpdateGoal(%q): expected ErrGoalNotFound, got %v", id, err)
		}
		deleted, err := repo.DeleteGoal(ctx, id)
		if err != nil || deleted {
			t.Fatalf("DeleteGoal(%q): expected false, nil, got %v, %v", id, deleted, err)
		}
	}
}

func TestValidID(t *testing.T) {
	if !validID("6f1c1f0e-2b7a-4c59-9a53-0f6b7b0f3a11") {
		t.Fatalf("expected uuid to be valid")
	}
	if validID("1") {
		t.Fatalf("expected legacy index to be invalid")
	}
}

package analytics

import (
	"time"

	"smartsave-go/internal/domain/goals"
)

// GoalView is a goal with its presentation fields attached.
type GoalView struct {
	goals.Goal
	Percent     int    `json:"percent"`
	Nudge       string `json:"nudge"`
	Projection  string `json:"projection"`
	IsCompleted bool   `json:"is_completed"`
}

type Dashboard struct {
	Goals       []GoalView   `json:"goals"`
	Streak      int          `json:"streak"`
	Badges      []Badge      `json:"badges"`
	Reminder    string       `json:"reminder,omitempty"`
	Monthly     []MonthTotal `json:"monthly"`
	TotalSaved  int64        `json:"total_saved"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// DepositSummary is what the client needs to refresh one goal card after a
// deposit without reloading the dashboard.
type DepositSummary struct {
	Saved       int64  `json:"saved"`
	Target      int64  `json:"target"`
	Percent     int    `json:"percent"`
	Nudge       string `json:"nudge"`
	Projection  string `json:"projection"`
	Streak      int    `json:"streak"`
	IsCompleted bool   `json:"is_completed"`
}

package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"smartsave-go/internal/domain/goals"
)

const (
	ProjectionReached      = "Goal Reached!"
	ProjectionNoHistory    = "Start saving to get an estimate"
	ProjectionInsufficient = "Insufficient data"
	ProjectionSaveMore     = "Save more to see projection"

	daysPerMonth = 30
)

// Projection estimates time to completion from the average daily amount
// saved since the goal's first deposit.
func Projection(goal goals.Goal, now time.Time) string {
	if goal.Saved >= goal.Target {
		return ProjectionReached
	}

	oldest, ok := goal.Oldest()
	if !ok {
		return ProjectionNoHistory
	}
	newest, _ := goal.Newest()

	first, ok := TransactionDate(oldest, now)
	if !ok {
		return ProjectionInsufficient
	}
	if _, ok := TransactionDate(newest, now); !ok {
		return ProjectionInsufficient
	}

	totalDays := max(1, daysBetween(first, now))
	if goal.Saved <= 0 {
		return ProjectionSaveMore
	}

	// remaining / (saved / totalDays), kept exact as remaining*totalDays / saved.
	remaining := decimal.NewFromInt(goal.Target - goal.Saved)
	daysNeeded, _ := remaining.
		Mul(decimal.NewFromInt(int64(totalDays))).
		QuoRem(decimal.NewFromInt(goal.Saved), 0)

	if daysNeeded.LessThan(decimal.NewFromInt(daysPerMonth)) {
		return fmt.Sprintf("~%s days to go", daysNeeded.String())
	}

	months := daysNeeded.Div(decimal.NewFromInt(daysPerMonth)).Round(1)
	return fmt.Sprintf("~%s months to go", months.StringFixed(1))
}

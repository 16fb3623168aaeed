package analytics

import "github.com/shopspring/decimal"

const (
	NudgeStartSaving = "Start saving!"
	NudgeFirstRupee  = "Every rupee counts! Small steps matter. 🌱"
	NudgeNotStarted  = "The best time to start is now! 🌟"
)

// Highest threshold first; lower bounds are inclusive percentages.
var nudgeBands = []struct {
	percent int64
	message string
}{
	{100, "🏆 Goal Reached! meaningful step forward!"},
	{90, "Final stretch! You are unstoppable! 🚀"},
	{75, "Incredible! 3/4 done. Finish strong! 💎"},
	{50, "Halfway mark passed! You're crushing it! 🔥"},
	{25, "25% secured! The habit is building. 🏗️"},
	{10, "Double digits! Nice momentum. 🌊"},
}

var hundred = decimal.NewFromInt(100)

func Nudge(saved, target int64) string {
	if target <= 0 {
		return NudgeStartSaving
	}
	scaled := decimal.NewFromInt(saved).Mul(hundred)
	total := decimal.NewFromInt(target)
	for _, band := range nudgeBands {
		if scaled.GreaterThanOrEqual(total.Mul(decimal.NewFromInt(band.percent))) {
			return band.message
		}
	}
	if saved > 0 {
		return NudgeFirstRupee
	}
	return NudgeNotStarted
}

// Percent is floor(saved/target*100) clamped to 0..100, or 0 without a target.
func Percent(saved, target int64) int {
	switch {
	case target <= 0, saved <= 0:
		return 0
	case saved >= target:
		return 100
	}
	percent, _ := decimal.NewFromInt(saved).Mul(hundred).QuoRem(decimal.NewFromInt(target), 0)
	return int(percent.IntPart())
}

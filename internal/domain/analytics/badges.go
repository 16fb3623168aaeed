package analytics

import "smartsave-go/internal/domain/goals"

const (
	streakMasterDays  = 7
	superSaverMinimum = 10000
)

type Badge struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var (
	BadgeFirstStep    = Badge{Icon: "🌱", Name: "First Step", Description: "Started the saving journey"}
	BadgeStreakMaster = Badge{Icon: "🔥", Name: "Streak Master", Description: "Saved for 7+ days in a row"}
	BadgeGoalCrusher  = Badge{Icon: "🏆", Name: "Goal Crusher", Description: "Completed at least one goal"}
	BadgeSuperSaver   = Badge{Icon: "💎", Name: "Super Saver", Description: "Saved over ₹10,000"}
)

// Badges evaluates every achievement independently, in display order.
func Badges(list []goals.Goal, streak int) []Badge {
	total := TotalSaved(list)
	badges := []Badge{}

	if total > 0 {
		badges = append(badges, BadgeFirstStep)
	}
	if streak >= streakMasterDays {
		badges = append(badges, BadgeStreakMaster)
	}
	if CompletedCount(list) > 0 {
		badges = append(badges, BadgeGoalCrusher)
	}
	if total >= superSaverMinimum {
		badges = append(badges, BadgeSuperSaver)
	}
	return badges
}

func TotalSaved(list []goals.Goal) int64 {
	var total int64
	for _, goal := range list {
		total += goal.Saved
	}
	return total
}

func CompletedCount(list []goals.Goal) int {
	count := 0
	for _, goal := range list {
		if goal.IsCompleted() {
			count++
		}
	}
	return count
}

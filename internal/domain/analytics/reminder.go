package analytics

import (
	"fmt"
	"time"

	"smartsave-go/internal/domain/goals"
)

const (
	ReminderStart = "Start your savings streak today! 🚀"

	reminderAfterDays = 2
)

// Reminder nudges when nothing was saved for more than two days. Empty means
// no reminder.
func Reminder(list []goals.Goal, now time.Time) string {
	if len(list) == 0 {
		return ""
	}

	var latest time.Time
	found := false
	for _, goal := range list {
		newest, ok := goal.Newest()
		if !ok {
			continue
		}
		date, ok := TransactionDate(newest, now)
		if !ok {
			continue
		}
		if !found || date.After(latest) {
			latest = date
			found = true
		}
	}
	if !found {
		return ReminderStart
	}

	if diff := daysBetween(latest, now); diff > reminderAfterDays {
		return fmt.Sprintf("You haven't saved in %d days! Put away just ₹10 today. ⏳", diff)
	}
	return ""
}

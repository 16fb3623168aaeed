package analytics

import (
	"sort"
	"time"

	"smartsave-go/internal/domain/goals"
)

// Streak counts consecutive days with at least one deposit on any goal,
// ending today or yesterday.
func Streak(list []goals.Goal, now time.Time) int {
	seen := make(map[int64]struct{})
	var dates []time.Time
	for _, goal := range list {
		for _, txn := range goal.History {
			date, ok := TransactionDate(txn, now)
			if !ok {
				continue
			}
			key := date.Unix()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	today := civilDay(now)
	yesterday := today.AddDate(0, 0, -1)
	if dates[0].Before(yesterday) {
		return 0
	}

	cursor := today
	if dates[0].Equal(yesterday) {
		cursor = yesterday
	}

	streak := 0
	for _, date := range dates {
		switch {
		case date.Equal(cursor):
			streak++
			cursor = cursor.AddDate(0, 0, -1)
		case date.After(cursor):
			continue
		default:
			return streak
		}
	}
	return streak
}

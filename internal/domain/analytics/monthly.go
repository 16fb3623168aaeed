package analytics

import (
	"sort"
	"time"

	"smartsave-go/internal/domain/goals"
)

type MonthTotal struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Total int64  `json:"total"`
}

// MonthlyTotals sums deposits per calendar month, oldest month first.
func MonthlyTotals(list []goals.Goal, now time.Time) []MonthTotal {
	totals := make(map[string]*MonthTotal)
	for _, goal := range list {
		for _, txn := range goal.History {
			date, ok := TransactionDate(txn, now)
			if !ok {
				continue
			}
			key := date.Format("2006-01")
			item, exists := totals[key]
			if !exists {
				item = &MonthTotal{Month: key, Label: date.Format("Jan")}
				totals[key] = item
			}
			item.Total += txn.Amount
		}
	}

	result := make([]MonthTotal, 0, len(totals))
	for _, item := range totals {
		result = append(result, *item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result
}

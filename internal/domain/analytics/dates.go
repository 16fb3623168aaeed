package analytics

import (
	"strconv"
	"strings"
	"time"

	"smartsave-go/internal/domain/goals"
)

const shortDateWithYear = "2 Jan 2006"

// ParseShortDate reads a stored "DD Mon" date. The year is taken from now,
// stepping back one year when that would put the date after today. Malformed
// input reports false.
func ParseShortDate(value string, now time.Time) (time.Time, bool) {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return time.Time{}, false
	}

	year := now.Year()
	parsed, err := time.ParseInLocation(shortDateWithYear, value+" "+strconv.Itoa(year), now.Location())
	if err != nil {
		return time.Time{}, false
	}
	if !parsed.After(civilDay(now)) {
		return parsed, true
	}

	parsed, err = time.ParseInLocation(shortDateWithYear, value+" "+strconv.Itoa(year-1), now.Location())
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// TransactionDate is the calendar day of a deposit. The full timestamp wins;
// records written before it existed fall back to the short date text.
func TransactionDate(txn goals.Transaction, now time.Time) (time.Time, bool) {
	if !txn.At.IsZero() {
		return civilDay(txn.At.In(now.Location())), true
	}
	return ParseShortDate(txn.Date, now)
}

func civilDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from -> to, negative when to is earlier.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// Package dates holds calendar-day helpers shared by the leave engine.
package dates

import "time"

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Range returns every calendar day from start to end inclusive, normalized
// to midnight. An end before start yields nil.
func Range(start, end time.Time) []time.Time {
	start = Day(start)
	end = Day(end)
	if end.Before(start) {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// CountDays returns the number of calendar days in [start, end] inclusive,
// or 0 when end is before start.
func CountDays(start, end time.Time) int {
	start = Day(start)
	end = Day(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

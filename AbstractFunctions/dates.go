package AbstractFunctions

import (
	"math"
	"time"
)

// GetTodayWindow returns the half-open interval [today 00:00, tomorrow
// 00:00) in server-local time. Every "today" filter in the reporting
// endpoints uses this same window.
func GetTodayWindow() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// RoundRate rounds a ratio to two decimal places for completion-rate
// responses.
func RoundRate(v float64) float64 {
	return math.Round(v*100) / 100
}

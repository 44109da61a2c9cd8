package ledger

import (
	"time"

	"hydration-tracker/internal/model"
)

// DayLayout identifies a calendar day on the local clock, e.g. "Sat Oct 17 2026".
const DayLayout = "Mon Jan 02 2006"

// TimeLayout is how entry times are shown in the history.
const TimeLayout = "15:04"

func Day(t time.Time) string { return t.Format(DayLayout) }

// ShouldReset reports whether a ledger last reset on lastReset is stale today.
// An empty marker (first run) is stale.
func ShouldReset(lastReset, today string) bool {
	return lastReset != today
}

// ApplyReset returns l cleared for today. Goal is kept.
func ApplyReset(l model.DailyLedger, today string) model.DailyLedger {
	return model.DailyLedger{
		Goal:      l.Goal,
		Total:     0,
		Entries:   []model.IntakeEntry{},
		LastReset: today,
	}
}

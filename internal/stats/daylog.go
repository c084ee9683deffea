// Package stats holds the pure derivation engine: date normalization, the
// streak state machine, period aggregation and calendar windows. Nothing in
// here touches storage or mutates anything besides the StudyStats value it
// is handed.
package stats

import (
	"time"

	"github.com/lumen/focusflow/pkg/entity"
)

// Normalize truncates a timestamp to its calendar-day midnight in server
// local time. Equality of normalized values is equality of calendar days.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// WeekStart returns the most recent Sunday midnight at or before t.
func WeekStart(t time.Time) time.Time {
	day := Normalize(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// MonthStart returns midnight of the 1st of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

// DayLog is a date-keyed view over daily log entries. Keys are normalized
// days, so lookups replace the source-of-record's linear scan with O(1).
type DayLog map[time.Time]int

func NewDayLog(entries []entity.DailyLogEntry) DayLog {
	log := make(DayLog, len(entries))
	for _, e := range entries {
		log[Normalize(e.Date)] += e.Minutes
	}
	return log
}

// Add accumulates minutes into day's entry. Same-day activity is additive,
// it never produces a second entry.
func (dl DayLog) Add(day time.Time, minutes int) {
	dl[Normalize(day)] += minutes
}

func (dl DayLog) Minutes(day time.Time) int {
	return dl[Normalize(day)]
}

// SumRange sums minutes for all days in [from, to] inclusive.
func (dl DayLog) SumRange(from, to time.Time) int {
	total := 0
	for day := Normalize(from); !day.After(Normalize(to)); day = day.AddDate(0, 0, 1) {
		total += dl[day]
	}
	return total
}

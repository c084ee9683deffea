package stats_test

import (
	"testing"
	"time"

	"github.com/lumen/focusflow/internal/stats"
	"github.com/lumen/focusflow/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	// now is Wednesday 2025-03-12; the week began Sunday 03-09, the month 03-01
	now := time.Date(2025, time.March, 12, 18, 0, 0, 0, time.Local)
	log := stats.NewDayLog([]entity.DailyLogEntry{
		{Date: time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local), Minutes: 90},
		{Date: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local), Minutes: 60},
		{Date: time.Date(2025, time.March, 8, 0, 0, 0, 0, time.Local), Minutes: 45},  // Saturday, previous week
		{Date: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.Local), Minutes: 120}, // earlier in month
		{Date: time.Date(2025, time.February, 27, 0, 0, 0, 0, time.Local), Minutes: 300},
	})
	st := &entity.StudyStats{
		TotalMinutes:  1500,
		TotalSessions: 42,
		CurrentStreak: 3,
		LongestStreak: 9,
		DailyGoal:     240,
		WeeklyGoal:    600,
	}

	summary := stats.Summarize(st, log, now)

	assert.Equal(t, 90, summary.Daily.Minutes)
	assert.Equal(t, 240, summary.Daily.Goal)
	assert.Equal(t, 150, summary.Weekly.Minutes)
	assert.Equal(t, 600, summary.Weekly.Goal)
	assert.Equal(t, 315, summary.Monthly.Minutes)
	assert.Equal(t, 1500, summary.Lifetime.Minutes)
	assert.Equal(t, 42, summary.Lifetime.Sessions)
	assert.Equal(t, 3, summary.Streak.Current)
	assert.Equal(t, 9, summary.Streak.Longest)
}

func TestSummarizeEmptyLog(t *testing.T) {
	now := time.Date(2025, time.March, 12, 18, 0, 0, 0, time.Local)
	st := &entity.StudyStats{DailyGoal: 240, WeeklyGoal: 600}
	summary := stats.Summarize(st, stats.NewDayLog(nil), now)
	assert.Equal(t, 0, summary.Daily.Minutes)
	assert.Equal(t, 0, summary.Weekly.Minutes)
	assert.Equal(t, 0, summary.Monthly.Minutes)
	assert.Equal(t, 0, summary.Lifetime.Minutes)
}

func TestSummarizeIsPure(t *testing.T) {
	now := time.Date(2025, time.March, 12, 18, 0, 0, 0, time.Local)
	log := stats.NewDayLog([]entity.DailyLogEntry{{Date: now, Minutes: 30}})
	st := &entity.StudyStats{TotalMinutes: 30, DailyGoal: 240, WeeklyGoal: 600}
	before := *st
	first := stats.Summarize(st, log, now)
	second := stats.Summarize(st, log, now)
	assert.Equal(t, first, second)
	assert.Equal(t, before, *st)
}

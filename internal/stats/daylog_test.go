package stats_test

import (
	"testing"
	"time"

	"github.com/lumen/focusflow/internal/stats"
	"github.com/lumen/focusflow/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	morning := time.Date(2025, time.March, 12, 5, 59, 59, 0, time.Local)
	evening := time.Date(2025, time.March, 12, 23, 45, 0, 0, time.Local)
	midnight := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local)
	assert.Equal(t, midnight, stats.Normalize(morning))
	assert.Equal(t, midnight, stats.Normalize(evening))
	assert.Equal(t, midnight, stats.Normalize(midnight))
	assert.NotEqual(t, stats.Normalize(morning), stats.Normalize(morning.AddDate(0, 0, 1)))
}

func TestWeekStart(t *testing.T) {
	// 2025-03-12 is a Wednesday, the week's Sunday is 2025-03-09
	wednesday := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.Local)
	sunday := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.Local)
	assert.Equal(t, sunday, stats.WeekStart(wednesday))
	// A Sunday is its own week start
	assert.Equal(t, sunday, stats.WeekStart(sunday.Add(time.Hour*13)))
}

func TestMonthStart(t *testing.T) {
	wednesday := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local), stats.MonthStart(wednesday))
}

func TestDayLogAdditivePerDay(t *testing.T) {
	log := stats.NewDayLog(nil)
	log.Add(today, 30)
	log.Add(today.Add(time.Hour*3), 45)
	assert.Equal(t, 75, log.Minutes(today))
	assert.Len(t, log, 1)

	log.Add(today.AddDate(0, 0, 1), 10)
	assert.Len(t, log, 2)
	assert.Equal(t, 75, log.Minutes(today))
}

func TestDayLogFromEntriesMergesSameDay(t *testing.T) {
	log := stats.NewDayLog([]entity.DailyLogEntry{
		{Date: today, Minutes: 20},
		{Date: today.Add(time.Hour), Minutes: 25},
		{Date: today.AddDate(0, 0, -1), Minutes: 60},
	})
	assert.Equal(t, 45, log.Minutes(today))
	assert.Equal(t, 60, log.Minutes(today.AddDate(0, 0, -1)))
	assert.Equal(t, 0, log.Minutes(today.AddDate(0, 0, -2)))
}

func TestDayLogSumRange(t *testing.T) {
	log := stats.NewDayLog([]entity.DailyLogEntry{
		{Date: today.AddDate(0, 0, -4), Minutes: 10},
		{Date: today.AddDate(0, 0, -2), Minutes: 20},
		{Date: today, Minutes: 40},
	})
	assert.Equal(t, 70, log.SumRange(today.AddDate(0, 0, -4), today))
	assert.Equal(t, 60, log.SumRange(today.AddDate(0, 0, -3), today))
	assert.Equal(t, 40, log.SumRange(today, today))
	assert.Equal(t, 0, log.SumRange(today.AddDate(0, 0, 1), today.AddDate(0, 0, 3)))
}

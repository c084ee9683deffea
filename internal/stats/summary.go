package stats

import (
	"time"

	"github.com/lumen/focusflow/pkg/entity"
)

// Summarize builds the four-scope read view. Daily, weekly and monthly
// minutes come from the day log; lifetime totals come straight from the
// aggregate since individual sessions are not retained. Pure, no mutation.
func Summarize(s *entity.StudyStats, log DayLog, now time.Time) entity.StatsSummary {
	today := Normalize(now)
	return entity.StatsSummary{
		Daily: entity.PeriodStats{
			Minutes: log.Minutes(today),
			Goal:    s.DailyGoal,
		},
		Weekly: entity.PeriodStats{
			Minutes: log.SumRange(WeekStart(now), today),
			Goal:    s.WeeklyGoal,
		},
		Monthly: entity.PeriodStats{
			Minutes: log.SumRange(MonthStart(now), today),
		},
		Lifetime: entity.LifetimeStats{
			Minutes:  s.TotalMinutes,
			Sessions: s.TotalSessions,
		},
		Streak: entity.StreakInfo{
			Current:       s.CurrentStreak,
			Longest:       s.LongestStreak,
			LastStudyDate: s.LastStudyDate,
		},
	}
}

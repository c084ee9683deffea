package stats

import (
	"time"

	"github.com/lumen/focusflow/pkg/entity"
)

// AdvanceStreak applies one activity event to the streak counters. It is
// keyed purely on the gap between LastStudyDate and today:
//
//   - never studied, or a gap of two days and more: streak restarts at 1
//   - last study was yesterday: streak continues, +1
//   - last study was today: already counted, unchanged
//
// LastStudyDate always moves to today and LongestStreak never decreases.
// Calling it again on the same day is a no-op for the counters, so repeated
// events within one day don't double-increment.
func AdvanceStreak(s *entity.StudyStats, today time.Time) {
	today = Normalize(today)
	yesterday := today.AddDate(0, 0, -1)

	var lastDay *time.Time
	if s.LastStudyDate != nil {
		d := Normalize(*s.LastStudyDate)
		lastDay = &d
	}

	switch {
	case lastDay == nil || lastDay.Before(yesterday):
		s.CurrentStreak = 1
	case lastDay.Equal(yesterday):
		s.CurrentStreak++
	}

	s.LastStudyDate = &today
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
}

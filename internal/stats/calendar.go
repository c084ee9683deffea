package stats

import (
	"time"

	"github.com/lumen/focusflow/pkg/entity"
)

// CalendarWindowDays is the trailing window served by the calendar endpoint.
const CalendarWindowDays = 365

// BuildCalendar renders a fixed-length trailing window of daily activity,
// oldest to newest, one entry per calendar day from now-(windowDays-1)
// through now. Days without a log entry come back zero-filled, never
// omitted, so the result always has exactly windowDays entries.
func BuildCalendar(log DayLog, now time.Time, windowDays int) []entity.CalendarDay {
	today := Normalize(now)
	calendar := make([]entity.CalendarDay, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		minutes := log.Minutes(day)
		calendar = append(calendar, entity.CalendarDay{
			Date:    day,
			Minutes: minutes,
			Studied: minutes > 0,
		})
	}
	return calendar
}

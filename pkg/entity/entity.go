package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

// StudyStats is the per-user aggregate the derivation engine runs on.
// Version is the optimistic-concurrency counter of the backing row and
// never leaves the server.
type StudyStats struct {
	UserID        uuid.UUID  `json:"uid"`
	TotalMinutes  int        `json:"total_minutes"`
	TotalSessions int        `json:"total_sessions"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastStudyDate *time.Time `json:"last_study_date,omitempty"`
	DailyGoal     int        `json:"daily_goal"`
	WeeklyGoal    int        `json:"weekly_goal"`
	Version       int64      `json:"-"`
}

// DailyLogEntry holds accumulated minutes for one calendar day.
// Date is always truncated to midnight.
type DailyLogEntry struct {
	Date    time.Time `json:"date"`
	Minutes int       `json:"minutes"`
}

type BadgeCategory string

const (
	BadgeStreak   BadgeCategory = "streak"
	BadgeHours    BadgeCategory = "hours"
	BadgeSessions BadgeCategory = "sessions"
	BadgeSpecial  BadgeCategory = "special"
)

// Badge is a catalog definition, immutable after startup.
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	Description string        `json:"description"`
	Category    BadgeCategory `json:"category"`
	Requirement int           `json:"requirement"`
}

// EarnedBadge is written once per (user, BadgeID) and never retracted.
type EarnedBadge struct {
	BadgeID     string    `json:"badge_id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earned_at"`
}

// SessionMeta carries event-time facts the special badges need. It is taken
// from the moment the activity occurred, not reconstructed later.
type SessionMeta struct {
	Hour    int
	Weekday time.Weekday
}

type PeriodStats struct {
	Minutes int `json:"minutes"`
	Goal    int `json:"goal,omitempty"`
}

type LifetimeStats struct {
	Minutes  int `json:"minutes"`
	Sessions int `json:"sessions"`
}

type StreakInfo struct {
	Current       int        `json:"current"`
	Longest       int        `json:"longest"`
	LastStudyDate *time.Time `json:"last_study_date,omitempty"`
}

type StatsSummary struct {
	Daily    PeriodStats   `json:"daily"`
	Weekly   PeriodStats   `json:"weekly"`
	Monthly  PeriodStats   `json:"monthly"`
	Lifetime LifetimeStats `json:"lifetime"`
	Streak   StreakInfo    `json:"streak"`
}

type CalendarDay struct {
	Date    time.Time `json:"date"`
	Minutes int       `json:"minutes"`
	Studied bool      `json:"studied"`
}

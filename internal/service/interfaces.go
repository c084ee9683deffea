package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumen/focusflow/internal/badges"
	"github.com/lumen/focusflow/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

// RecordActivityRequest is one "activity completed" event. OccurredAt zero
// means now; its hour and weekday feed the special badge predicates.
type RecordActivityRequest struct {
	Minutes          int `validate:"required,gt=0"`
	SessionCompleted bool
	OccurredAt       time.Time
}

type PreferencesRequest struct {
	DailyGoal  *int `validate:"omitempty,gt=0"`
	WeeklyGoal *int `validate:"omitempty,gt=0"`
}

type CalendarView struct {
	Days          []entity.CalendarDay `json:"calendar"`
	CurrentStreak int                  `json:"current_streak"`
	LongestStreak int                  `json:"longest_streak"`
}

type BadgeCollection struct {
	Badges      []badges.BadgeStatus `json:"badges"`
	EarnedCount int                  `json:"earned_count"`
	TotalCount  int                  `json:"total_count"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database with a
	// default stats row attached. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type StatsServiceI interface {
	// Applies one activity event: daily log, streak, totals, badge scan,
	// one atomic persist. Returns updated stats and the new-badge batch
	RecordActivity(ctx context.Context, uid uuid.UUID, req *RecordActivityRequest) (*entity.StudyStats, []entity.EarnedBadge, error)
	// Read-only four-scope view against the user's goals
	Summary(ctx context.Context, uid uuid.UUID, now time.Time) (*entity.StatsSummary, error)
	// Fixed-length trailing activity window, oldest to newest
	Calendar(ctx context.Context, uid uuid.UUID, now time.Time, windowDays int) (*CalendarView, error)
	// Full catalog annotated with the user's earned state
	Badges(ctx context.Context, uid uuid.UUID) (*BadgeCollection, error)
	// Updates goal thresholds only, streaks and badges untouched
	UpdatePreferences(ctx context.Context, uid uuid.UUID, req *PreferencesRequest) (*entity.StudyStats, error)
}

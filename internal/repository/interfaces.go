package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lumen/focusflow/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
}

// StatsUpdate is one activity event's worth of writes, applied as a single
// transaction. Stats carries the new values and the version observed when
// the row was loaded; the apply fails with ErrStatsConflict when another
// writer got there first.
type StatsUpdate struct {
	UserID    uuid.UUID
	Stats     *entity.StudyStats
	Day       time.Time
	Minutes   int
	NewBadges []entity.EarnedBadge
}

type StatsRepositoryI interface {
	// Inserts the default stats row for a freshly registered user
	CreateStats(ctx context.Context, uid uuid.UUID) error
	// Loads the user's stats row including its version
	GetStats(ctx context.Context, uid uuid.UUID) (*entity.StudyStats, error)
	// Applies one activity event atomically under the version check
	ApplyEvent(ctx context.Context, update *StatsUpdate) error
	// Provides daily log entries with dates in [from, to]
	GetDailyLogRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]entity.DailyLogEntry, error)
	// Lists badges the user has earned so far
	GetEarnedBadges(ctx context.Context, uid uuid.UUID) ([]entity.EarnedBadge, error)
	// Updates goal thresholds only; nil leaves a goal untouched
	UpdateGoals(ctx context.Context, uid uuid.UUID, dailyGoal, weeklyGoal *int) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

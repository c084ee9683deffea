package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/lumen/focusflow/internal/error_values"
	"github.com/lumen/focusflow/pkg/cleanup"
	"github.com/lumen/focusflow/pkg/entity"
)

type StatsRepository struct {
	conn PgConnection
}

func NewStatsRepo(cfg DBConfig) *StatsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for statsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for statsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &StatsRepository{
		conn: pool,
	}
}

func NewStatsRepoWithConn(conn PgConnection) *StatsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for statsRepo: " + err.Error())
	}
	return &StatsRepository{
		conn: conn,
	}
}

func (sr *StatsRepository) CreateStats(ctx context.Context, uid uuid.UUID) error {
	_, err := sr.conn.Exec(ctx, `INSERT INTO user_stats (user_id) VALUES ($1);`, uid)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("creating stats row error: " + err.Error())
	}
	return nil
}

func (sr *StatsRepository) GetStats(ctx context.Context, uid uuid.UUID) (*entity.StudyStats, error) {
	stats := entity.StudyStats{UserID: uid}
	row := sr.conn.QueryRow(ctx, `SELECT total_minutes, total_sessions, current_streak, longest_streak, last_study_date, daily_goal, weekly_goal, version
		FROM user_stats WHERE user_id = $1;`, uid)
	err := row.Scan(
		&stats.TotalMinutes,
		&stats.TotalSessions,
		&stats.CurrentStreak,
		&stats.LongestStreak,
		&stats.LastStudyDate,
		&stats.DailyGoal,
		&stats.WeeklyGoal,
		&stats.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrStatsNotFound
		}
		return nil, errors.New("getting stats error: " + err.Error())
	}
	return &stats, nil
}

// ApplyEvent writes one activity event in a single transaction: the stats
// row moves to its new values under the compare-and-swap on version, today's
// daily log entry is upserted additively, and any new badges are inserted
// insert-or-ignore. Losing the version race aborts the whole event with
// ErrStatsConflict.
func (sr *StatsRepository) ApplyEvent(ctx context.Context, update *StatsUpdate) error {
	if update == nil || update.Stats == nil {
		return errors.New("stats update is nil")
	}
	tx, err := sr.conn.Begin(ctx)
	if err != nil {
		return errors.New("starting stats tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `UPDATE user_stats SET total_minutes = $1, total_sessions = $2, current_streak = $3, longest_streak = $4, last_study_date = $5, version = version + 1
		WHERE user_id = $6 AND version = $7;`,
		update.Stats.TotalMinutes,
		update.Stats.TotalSessions,
		update.Stats.CurrentStreak,
		update.Stats.LongestStreak,
		update.Stats.LastStudyDate,
		update.UserID,
		update.Stats.Version,
	)
	if err != nil {
		return errors.New("updating stats row error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrStatsConflict
	}

	_, err = tx.Exec(ctx, `INSERT INTO daily_log (user_id, day, minutes) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, day) DO UPDATE SET minutes = daily_log.minutes + EXCLUDED.minutes;`,
		update.UserID,
		update.Day,
		update.Minutes,
	)
	if err != nil {
		return errors.New("upserting daily log error: " + err.Error())
	}

	for _, b := range update.NewBadges {
		_, err = tx.Exec(ctx, `INSERT INTO earned_badges (user_id, badge_id, name, icon, description, earned_at) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id, badge_id) DO NOTHING;`,
			update.UserID,
			b.BadgeID,
			b.Name,
			b.Icon,
			b.Description,
			b.EarnedAt,
		)
		if err != nil {
			return errors.New("inserting earned badge error: " + err.Error())
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing stats tx error: " + err.Error())
	}
	return nil
}

func (sr *StatsRepository) GetDailyLogRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]entity.DailyLogEntry, error) {
	rows, err := sr.conn.Query(ctx, `SELECT day, minutes FROM daily_log WHERE user_id = $1 AND day >= $2 AND day <= $3 ORDER BY day;`,
		uid,
		from,
		to,
	)
	if err != nil {
		return nil, errors.New("getting daily log range error: " + err.Error())
	}
	defer rows.Close()
	entries := make([]entity.DailyLogEntry, 0)
	for rows.Next() {
		var e entity.DailyLogEntry
		if err = rows.Scan(&e.Date, &e.Minutes); err != nil {
			return nil, errors.New("daily log row parsing error: " + err.Error())
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected daily log rows error: " + rows.Err().Error())
	}
	return entries, nil
}

func (sr *StatsRepository) GetEarnedBadges(ctx context.Context, uid uuid.UUID) ([]entity.EarnedBadge, error) {
	rows, err := sr.conn.Query(ctx, `SELECT badge_id, name, icon, description, earned_at FROM earned_badges WHERE user_id = $1 ORDER BY earned_at;`, uid)
	if err != nil {
		return nil, errors.New("getting earned badges error: " + err.Error())
	}
	defer rows.Close()
	earned := make([]entity.EarnedBadge, 0)
	for rows.Next() {
		var b entity.EarnedBadge
		if err = rows.Scan(&b.BadgeID, &b.Name, &b.Icon, &b.Description, &b.EarnedAt); err != nil {
			return nil, errors.New("earned badge row parsing error: " + err.Error())
		}
		earned = append(earned, b)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected earned badge rows error: " + rows.Err().Error())
	}
	return earned, nil
}

func (sr *StatsRepository) UpdateGoals(ctx context.Context, uid uuid.UUID, dailyGoal, weeklyGoal *int) error {
	ct, err := sr.conn.Exec(ctx, `UPDATE user_stats SET daily_goal = COALESCE($1, daily_goal), weekly_goal = COALESCE($2, weekly_goal), version = version + 1 WHERE user_id = $3;`,
		dailyGoal,
		weeklyGoal,
		uid,
	)
	if err != nil {
		return errors.New("updating goals error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrStatsNotFound
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lumen/focusflow/internal/badges"
	errorvalues "github.com/lumen/focusflow/internal/error_values"
	"github.com/lumen/focusflow/internal/repository"
	"github.com/lumen/focusflow/internal/stats"
	"github.com/lumen/focusflow/pkg/entity"
)

type StatsService struct {
	repo repository.StatsRepositoryI
}

func NewStatsService(statsRepo repository.StatsRepositoryI) *StatsService {
	if statsRepo == nil {
		log.Fatal("provided nil statsRepo")
	}
	return &StatsService{
		repo: statsRepo,
	}
}

// RecordActivity runs the whole derivation chain for one event: validate,
// load the aggregate, bump totals, advance the streak, scan badges, persist
// everything in one transaction. A lost version race surfaces as
// ErrStatsConflict with nothing applied; retrying is the caller's call.
func (ss *StatsService) RecordActivity(ctx context.Context, uid uuid.UUID, req *RecordActivityRequest) (*entity.StudyStats, []entity.EarnedBadge, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errorvalues.ErrValidation
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, nil, err
		}
		return nil, nil, errors.New("validation unexpected error: " + err.Error())
	}
	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	today := stats.Normalize(occurredAt)

	st, err := ss.repo.GetStats(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStatsNotFound) {
			return nil, nil, err
		}
		return nil, nil, errors.New("stats repository error: " + err.Error())
	}
	loadedVersion := st.Version

	st.TotalMinutes += req.Minutes
	if req.SessionCompleted {
		st.TotalSessions++
	}
	stats.AdvanceStreak(st, today)

	weekLog, err := ss.repo.GetDailyLogRange(ctx, uid, stats.WeekStart(occurredAt), today)
	if err != nil {
		return nil, nil, errors.New("stats repository error: " + err.Error())
	}
	dayLog := stats.NewDayLog(weekLog)
	dayLog.Add(today, req.Minutes)
	sunday := stats.WeekStart(occurredAt)
	saturday := sunday.AddDate(0, 0, 6)

	earned, err := ss.repo.GetEarnedBadges(ctx, uid)
	if err != nil {
		return nil, nil, errors.New("stats repository error: " + err.Error())
	}
	owned := make(map[string]struct{}, len(earned))
	for _, b := range earned {
		owned[b.BadgeID] = struct{}{}
	}

	newBadges := badges.Evaluate(badges.Evaluation{
		Stats: *st,
		Meta: &entity.SessionMeta{
			Hour:    occurredAt.Hour(),
			Weekday: occurredAt.Weekday(),
		},
		WeekendStudied: dayLog.Minutes(saturday) > 0 && dayLog.Minutes(sunday) > 0,
	}, owned, time.Now())

	st.Version = loadedVersion
	err = ss.repo.ApplyEvent(ctx, &repository.StatsUpdate{
		UserID:    uid,
		Stats:     st,
		Day:       today,
		Minutes:   req.Minutes,
		NewBadges: newBadges,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrStatsConflict) {
			return nil, nil, err
		}
		return nil, nil, errors.New("stats repository error: " + err.Error())
	}
	return st, newBadges, nil
}

func (ss *StatsService) Summary(ctx context.Context, uid uuid.UUID, now time.Time) (*entity.StatsSummary, error) {
	st, err := ss.repo.GetStats(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStatsNotFound) {
			return nil, err
		}
		return nil, errors.New("stats repository error: " + err.Error())
	}
	from := stats.MonthStart(now)
	if weekStart := stats.WeekStart(now); weekStart.Before(from) {
		from = weekStart
	}
	entries, err := ss.repo.GetDailyLogRange(ctx, uid, from, stats.Normalize(now))
	if err != nil {
		return nil, errors.New("stats repository error: " + err.Error())
	}
	summary := stats.Summarize(st, stats.NewDayLog(entries), now)
	return &summary, nil
}

func (ss *StatsService) Calendar(ctx context.Context, uid uuid.UUID, now time.Time, windowDays int) (*CalendarView, error) {
	st, err := ss.repo.GetStats(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStatsNotFound) {
			return nil, err
		}
		return nil, errors.New("stats repository error: " + err.Error())
	}
	today := stats.Normalize(now)
	entries, err := ss.repo.GetDailyLogRange(ctx, uid, today.AddDate(0, 0, -(windowDays-1)), today)
	if err != nil {
		return nil, errors.New("stats repository error: " + err.Error())
	}
	return &CalendarView{
		Days:          stats.BuildCalendar(stats.NewDayLog(entries), now, windowDays),
		CurrentStreak: st.CurrentStreak,
		LongestStreak: st.LongestStreak,
	}, nil
}

func (ss *StatsService) Badges(ctx context.Context, uid uuid.UUID) (*BadgeCollection, error) {
	earned, err := ss.repo.GetEarnedBadges(ctx, uid)
	if err != nil {
		return nil, errors.New("stats repository error: " + err.Error())
	}
	return &BadgeCollection{
		Badges:      badges.Annotate(earned),
		EarnedCount: len(earned),
		TotalCount:  len(badges.Catalog()),
	}, nil
}

func (ss *StatsService) UpdatePreferences(ctx context.Context, uid uuid.UUID, req *PreferencesRequest) (*entity.StudyStats, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errorvalues.ErrValidation
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	err = ss.repo.UpdateGoals(ctx, uid, req.DailyGoal, req.WeeklyGoal)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStatsNotFound) {
			return nil, err
		}
		return nil, errors.New("stats repository error: " + err.Error())
	}
	st, err := ss.repo.GetStats(ctx, uid)
	if err != nil {
		return nil, errors.New("stats repository error: " + err.Error())
	}
	return st, nil
}

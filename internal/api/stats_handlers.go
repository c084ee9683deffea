package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/lumen/focusflow/internal/error_values"
	"github.com/lumen/focusflow/internal/service"
	"github.com/lumen/focusflow/internal/stats"
	"github.com/lumen/focusflow/pkg/entity"
	"github.com/lumen/focusflow/pkg/httputil"
)

type UpdateStatsRequest struct {
	Minutes          int        `json:"minutes"`
	SessionCompleted *bool      `json:"session_completed"`
	OccurredAt       *time.Time `json:"occurred_at"`
}

type UpdateStatsResponse struct {
	Stats     *entity.StudyStats   `json:"stats"`
	NewBadges []entity.EarnedBadge `json:"new_badges"`
	Message   string               `json:"message"`
}

type PreferencesRequest struct {
	DailyGoal  *int `json:"daily_goal"`
	WeeklyGoal *int `json:"weekly_goal"`
}

type SummaryResponse struct {
	Stats *entity.StatsSummary `json:"stats"`
}

func (s *Server) GetStatsSummary(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("stats summary error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	summary, err := s.statsService.Summary(ctx, uid, time.Now())
	if err != nil {
		if errors.Is(err, errorvalues.ErrStatsNotFound) {
			logger.Error("stats summary error: stats don't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "stats don't exist", nil)
			return
		}
		logger.Error("stats summary error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building summary", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, SummaryResponse{Stats: summary})
	logger.Info("stats summary provided")
}

func (s *Server) GetBadges(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("badges error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	collection, err := s.statsService.Badges(ctx, uid)
	if err != nil {
		logger.Error("badges error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while listing badges", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, collection)
	logger.Info("badges provided")
}

func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("calendar error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	view, err := s.statsService.Calendar(ctx, uid, time.Now(), stats.CalendarWindowDays)
	if err != nil {
		if errors.Is(err, errorvalues.ErrStatsNotFound) {
			logger.Error("calendar error: stats don't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "stats don't exist", nil)
			return
		}
		logger.Error("calendar error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building calendar", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, view)
	logger.Info("calendar provided")
}

func (s *Server) UpdateStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("stats update error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req UpdateStatsRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("stats update error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	serviceReq := service.RecordActivityRequest{
		Minutes:          req.Minutes,
		SessionCompleted: true,
	}
	if req.SessionCompleted != nil {
		serviceReq.SessionCompleted = *req.SessionCompleted
	}
	if req.OccurredAt != nil {
		serviceReq.OccurredAt = *req.OccurredAt
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	updated, newBadges, err := s.statsService.RecordActivity(ctx, uid, &serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("stats update error: invalid minutes")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "minutes must be a positive integer", err)
		case errors.Is(err, errorvalues.ErrStatsNotFound):
			logger.Error("stats update error: stats don't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "stats don't exist", nil)
		case errors.Is(err, errorvalues.ErrStatsConflict):
			logger.Error("stats update error: concurrent update")
			httputil.WriteErrorResponse(w, http.StatusConflict, "stats were updated concurrently, retry the event", nil)
		default:
			logger.Error("stats update error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating stats", nil)
		}
		return
	}
	message := "Stats updated"
	if len(newBadges) > 0 {
		message = fmt.Sprintf("You earned %d new badge(s)!", len(newBadges))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, UpdateStatsResponse{
		Stats:     updated,
		NewBadges: newBadges,
		Message:   message,
	})
	logger.Info("stats updated", slog.Int("new_badges", len(newBadges)))
}

func (s *Server) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("preferences error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req PreferencesRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("preferences error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	updated, err := s.statsService.UpdatePreferences(ctx, uid, &service.PreferencesRequest{
		DailyGoal:  req.DailyGoal,
		WeeklyGoal: req.WeeklyGoal,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("preferences error: invalid goals")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "goals must be positive integers", err)
		case errors.Is(err, errorvalues.ErrStatsNotFound):
			logger.Error("preferences error: stats don't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "stats don't exist", nil)
		default:
			logger.Error("preferences error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating preferences", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"stats": updated})
	logger.Info("preferences updated")
}

package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	errorvalues "github.com/lumen/focusflow/internal/error_values"
	"github.com/lumen/focusflow/internal/repository"
	"github.com/lumen/focusflow/internal/repository/mocks"
	"github.com/lumen/focusflow/internal/service"
	"github.com/lumen/focusflow/pkg/entity"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

var userID = uuid.New()

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	t.Run("registered with stats row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		usersRepo := mocks.NewMockUsersRepositoryI(ctrl)
		statsRepo := mocks.NewMockStatsRepositoryI(ctrl)
		us := service.NewUserService(usersRepo, statsRepo)
		usersRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		usersRepo.EXPECT().FindByName(gomock.Any(), "test_user").Return(&entity.User{
			ID:   userID,
			Name: "test_user",
		}, nil)
		statsRepo.EXPECT().CreateStats(gomock.Any(), userID).Return(nil)
		user, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Password: "test_password",
		})
		assert.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})
	t.Run("validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		us := service.NewUserService(mocks.NewMockUsersRepositoryI(ctrl), mocks.NewMockStatsRepositoryI(ctrl))
		_, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "bad name!",
			Password: "short",
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("user exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		usersRepo := mocks.NewMockUsersRepositoryI(ctrl)
		us := service.NewUserService(usersRepo, mocks.NewMockStatsRepositoryI(ctrl))
		usersRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errorvalues.ErrUserExists)
		_, err := us.Register(ctx, &service.RegisterRequest{
			Name:     "test_user",
			Password: "test_password",
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	password := "test_password"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	user := entity.User{
		ID:           userID,
		Name:         "test_user",
		PasswordHash: string(hash),
	}
	t.Run("logged in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		usersRepo := mocks.NewMockUsersRepositoryI(ctrl)
		us := service.NewUserService(usersRepo, mocks.NewMockStatsRepositoryI(ctrl))
		usersRepo.EXPECT().FindByName(gomock.Any(), user.Name).Return(&user, nil)
		result, err := us.Login(ctx, user.Name, password)
		assert.NoError(t, err)
		assert.Equal(t, user, *result)
	})
	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		usersRepo := mocks.NewMockUsersRepositoryI(ctrl)
		us := service.NewUserService(usersRepo, mocks.NewMockStatsRepositoryI(ctrl))
		usersRepo.EXPECT().FindByName(gomock.Any(), user.Name).Return(&user, nil)
		_, err := us.Login(ctx, user.Name, "wrong_password")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		usersRepo := mocks.NewMockUsersRepositoryI(ctrl)
		us := service.NewUserService(usersRepo, mocks.NewMockStatsRepositoryI(ctrl))
		usersRepo.EXPECT().FindByName(gomock.Any(), user.Name).Return(nil, errorvalues.ErrUserNotFound)
		_, err := us.Login(ctx, user.Name, password)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		usersRepo := mocks.NewMockUsersRepositoryI(ctrl)
		us := service.NewUserService(usersRepo, mocks.NewMockStatsRepositoryI(ctrl))
		usersRepo.EXPECT().FindByName(gomock.Any(), user.Name).Return(nil, errors.New("db error"))
		_, err := us.Login(ctx, user.Name, password)
		assert.Error(t, err)
	})
}

func TestUserServiceIntegrational(t *testing.T) {
	dbCfg := setupUsersTestDB(t)
	usersRepo := repository.NewUsersRepo(dbCfg)
	statsRepo := repository.NewStatsRepo(dbCfg)
	us := service.NewUserService(usersRepo, statsRepo)
	ctx := context.Background()
	username := "test_user"
	password := "test_password"
	var user *entity.User
	var err error
	t.Run("registered user", func(t *testing.T) {
		user, err = us.Register(ctx, &service.RegisterRequest{
			Name:     username,
			Password: password,
		})
		assert.NoError(t, err)
		assert.Equal(t, username, user.Name)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
	})
	t.Run("stats row provisioned with defaults", func(t *testing.T) {
		stats, err := statsRepo.GetStats(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0, stats.TotalMinutes)
		assert.Equal(t, 240, stats.DailyGoal)
		assert.Equal(t, 600, stats.WeeklyGoal)
	})
	t.Run("error registering already existed user", func(t *testing.T) {
		_, err = us.Register(ctx, &service.RegisterRequest{
			Name:     username,
			Password: password,
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("login", func(t *testing.T) {
		res, err := us.Login(ctx, username, password)
		assert.NoError(t, err)
		assert.Equal(t, *user, *res)
	})
	t.Run("error login on unexisted user", func(t *testing.T) {
		_, err := us.Login(ctx, "aaaaaaa", "bbbbbbbb")
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("found by id", func(t *testing.T) {
		res, err := us.GetByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, *user, *res)
	})
	t.Run("not found by id", func(t *testing.T) {
		_, err := us.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestStatsServiceIntegrational(t *testing.T) {
	dbCfg := setupUsersTestDB(t)
	usersRepo := repository.NewUsersRepo(dbCfg)
	statsRepo := repository.NewStatsRepo(dbCfg)
	us := service.NewUserService(usersRepo, statsRepo)
	ss := service.NewStatsService(statsRepo)
	ctx := context.Background()
	occurredAt := time.Date(2025, time.March, 12, 15, 0, 0, 0, time.Local)
	user, err := us.Register(ctx, &service.RegisterRequest{
		Name:     "stats_user",
		Password: "test_password",
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Run("first event earns first_session", func(t *testing.T) {
		st, newBadges, err := ss.RecordActivity(ctx, user.ID, &service.RecordActivityRequest{
			Minutes:          30,
			SessionCompleted: true,
			OccurredAt:       occurredAt,
		})
		assert.NoError(t, err)
		assert.Equal(t, 30, st.TotalMinutes)
		assert.Equal(t, 1, st.TotalSessions)
		assert.Equal(t, 1, st.CurrentStreak)
		assert.Len(t, newBadges, 1)
		assert.Equal(t, "first_session", newBadges[0].BadgeID)
	})
	t.Run("same day event adds without new badges", func(t *testing.T) {
		st, newBadges, err := ss.RecordActivity(ctx, user.ID, &service.RecordActivityRequest{
			Minutes:          45,
			SessionCompleted: true,
			OccurredAt:       occurredAt.Add(time.Hour * 2),
		})
		assert.NoError(t, err)
		assert.Equal(t, 75, st.TotalMinutes)
		assert.Equal(t, 2, st.TotalSessions)
		assert.Equal(t, 1, st.CurrentStreak)
		assert.Empty(t, newBadges)
	})
	t.Run("summary over the logged day", func(t *testing.T) {
		summary, err := ss.Summary(ctx, user.ID, occurredAt)
		assert.NoError(t, err)
		assert.Equal(t, 75, summary.Daily.Minutes)
		assert.Equal(t, 75, summary.Weekly.Minutes)
		assert.Equal(t, 75, summary.Monthly.Minutes)
		assert.Equal(t, 75, summary.Lifetime.Minutes)
		assert.Equal(t, 2, summary.Lifetime.Sessions)
	})
	t.Run("calendar window", func(t *testing.T) {
		view, err := ss.Calendar(ctx, user.ID, occurredAt, 7)
		assert.NoError(t, err)
		assert.Len(t, view.Days, 7)
		assert.Equal(t, 75, view.Days[6].Minutes)
		assert.True(t, view.Days[6].Studied)
	})
	t.Run("badge collection", func(t *testing.T) {
		collection, err := ss.Badges(ctx, user.ID)
		assert.NoError(t, err)
		assert.Equal(t, 1, collection.EarnedCount)
		assert.Equal(t, 18, collection.TotalCount)
	})
	t.Run("update preferences", func(t *testing.T) {
		daily := 300
		st, err := ss.UpdatePreferences(ctx, user.ID, &service.PreferencesRequest{
			DailyGoal: &daily,
		})
		assert.NoError(t, err)
		assert.Equal(t, 300, st.DailyGoal)
		assert.Equal(t, 600, st.WeeklyGoal)
	})
}

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func setupUsersTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("focusflow"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	connStr, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	connStr += "sslmode=disable"
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	err = goose.Up(conn, "../../migrations")
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	return &testPGConfig{
		connStr: connStr,
	}
}

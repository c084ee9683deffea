// @title FocusFlow API
// @description Study-productivity tracker backend: sessions, streaks, badges
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/lumen/focusflow/internal/api"
	"github.com/lumen/focusflow/internal/repository"
	"github.com/lumen/focusflow/internal/service"
	"github.com/lumen/focusflow/pkg/cleanup"
	"github.com/lumen/focusflow/pkg/config"
	jwtservice "github.com/lumen/focusflow/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	statsRepo := repository.NewStatsRepo(&dbCfg)
	userService := service.NewUserService(repository.NewUsersRepo(&dbCfg), statsRepo)
	statsService := service.NewStatsService(statsRepo)
	serv := api.New(&api.ServicesList{
		UserService:  userService,
		StatsService: statsService,
		JwtService:   jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lumen/focusflow/internal/service"
)

type Server struct {
	mx           *chi.Mux
	userService  service.UserServiceI
	statsService service.StatsServiceI
	jwtService   JWTServiceI
}

type ServicesList struct {
	UserService  service.UserServiceI
	StatsService service.StatsServiceI
	JwtService   JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:           chi.NewMux(),
		userService:  servicesOptions.UserService,
		statsService: servicesOptions.StatsService,
		jwtService:   servicesOptions.JwtService,
	}
}

func (s *Server) Run(addr string) error {
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/stats/summary", s.GetStatsSummary)
			r.Get("/stats/badges", s.GetBadges)
			r.Get("/stats/calendar", s.GetCalendar)
			r.Post("/stats/update", s.UpdateStats)
			r.Put("/stats/preferences", s.UpdatePreferences)
		})
	})
	return http.ListenAndServe(addr, s.mx)
}

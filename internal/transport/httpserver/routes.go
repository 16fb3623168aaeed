package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"smartsave-go/internal/config"
	"smartsave-go/internal/transport/httpserver/handler"
	"smartsave-go/internal/transport/httpserver/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS(cfg.CORSOrigins))
	r.Use(handlers.Sessions.Load)

	r.Handle("/static/*", http.StripPrefix("/static/", handler.Static()))

	r.Get("/", handlers.Index)
	r.Get("/login", handlers.Login)
	r.Get("/login/google", handlers.LoginGoogle)
	r.Get("/sim-authorize", handlers.SimAuthorizePage)
	r.Post("/sim-authorize", handlers.SimAuthorize)
	r.Get("/authorize", handlers.Authorize)
	r.Get("/logout", handlers.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(cfg.Auth.RequireLogin))

		r.Get("/goal", handlers.GoalPage)
		r.Post("/add-goal", handlers.AddGoalForm)
		r.Post("/add-money/{id}", handlers.AddMoney)
		r.Post("/delete-goal/{id}", handlers.DeleteGoalLegacy)
		r.Get("/get-upi-link/{id}/{amount}", handlers.UPILink)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Get("/auth/me", handlers.AuthMe)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(cfg.Auth.RequireLogin))

			r.Get("/dashboard", handlers.Dashboard)
			r.Get("/goals", handlers.ListGoals)
			r.Post("/goals", handlers.CreateGoal)
			r.Post("/goals/{id}/deposits", handlers.CreateDeposit)
			r.Delete("/goals/{id}", handlers.DeleteGoal)
		})
	})

	return r
}

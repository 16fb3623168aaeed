package handler

import (
	"smartsave-go/internal/auth"
	analyticsdomain "smartsave-go/internal/domain/analytics"
	goalsdomain "smartsave-go/internal/domain/goals"
	"smartsave-go/internal/transport/httpserver/middleware"
	"smartsave-go/pkg/logger"
)

type Handlers struct {
	Goals     *goalsdomain.Service
	Analytics *analyticsdomain.Service
	Auth      auth.Provider
	Sessions  *middleware.Sessions
	log       logger.Logger
}

func New(goals *goalsdomain.Service, analytics *analyticsdomain.Service, provider auth.Provider, sessions *middleware.Sessions, log logger.Logger) *Handlers {
	return &Handlers{
		Goals:     goals,
		Analytics: analytics,
		Auth:      provider,
		Sessions:  sessions,
		log:       log,
	}
}

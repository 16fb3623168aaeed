package app

import (
	"fmt"
	"net/http"

	"smartsave-go/internal/auth"
	"smartsave-go/internal/config"
	"smartsave-go/internal/db"
	analyticsdomain "smartsave-go/internal/domain/analytics"
	goalsdomain "smartsave-go/internal/domain/goals"
	filerepo "smartsave-go/internal/repository/file"
	postgresgoals "smartsave-go/internal/repository/postgres/goals"
	sqliterepo "smartsave-go/internal/repository/sqlite"
	"smartsave-go/internal/transport/httpserver"
	"smartsave-go/internal/transport/httpserver/handler"
	"smartsave-go/internal/transport/httpserver/middleware"
	"smartsave-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	store      *Store
	goals      *goalsdomain.Service
	analytics  *analyticsdomain.Service
}

// Store is the configured goal repository plus whatever it needs closed.
type Store struct {
	Repo  goalsdomain.Repository
	close func() error
}

func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStore opens the repository selected by cfg.Store.Driver. The postgres
// driver applies pending migrations before returning.
func OpenStore(cfg config.Config, log logger.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverFile:
		log.Info("app: using file store", "path", cfg.Store.DataFile, "seed", cfg.Store.SeedFile)
		return &Store{Repo: filerepo.NewGoalsRepository(cfg.Store.DataFile, cfg.Store.SeedFile, log)}, nil

	case config.StoreDriverSQLite:
		log.Info("app: using sqlite store", "path", cfg.Store.SQLitePath)
		repo, err := sqliterepo.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{Repo: repo, close: repo.Close}, nil

	case config.StoreDriverPostgres:
		log.Info("app: initializing database")
		dbConn, err := db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := dbConn.DB()
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(dbConn, log); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &Store{Repo: postgresgoals.NewPostgres(dbConn), close: sqlDB.Close}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func New(cfg config.Config, log logger.Logger) (*App, error) {
	store, err := OpenStore(cfg, log)
	if err != nil {
		return nil, err
	}

	goals := goalsdomain.NewService(store.Repo, goalsdomain.PaymentConfig{
		UPIAddress: cfg.Payments.UPIAddress,
		PayeeName:  cfg.Payments.PayeeName,
	})
	analytics := analyticsdomain.NewService(store.Repo, log.With("component", "analytics"))

	provider, err := auth.New(cfg.Auth, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	sessions := middleware.NewSessions(cfg.Auth, !cfg.IsDevelopment(), log)

	log.Info("app: initializing router")
	handlers := handler.New(goals, analytics, provider, sessions, log.With("component", "http"))
	router := httpserver.NewRouter(cfg, handlers)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		log:        log,
		httpServer: srv,
		store:      store,
		goals:      goals,
		analytics:  analytics,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Goals() *goalsdomain.Service {
	return a.goals
}

func (a *App) Analytics() *analyticsdomain.Service {
	return a.analytics
}

func (a *App) Close() error {
	return a.store.Close()
}

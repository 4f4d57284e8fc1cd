package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/littlemaker/configurador/internal/catalog"
	"github.com/littlemaker/configurador/internal/config"
	"github.com/littlemaker/configurador/internal/db"
	"github.com/littlemaker/configurador/internal/migrations"
	"github.com/littlemaker/configurador/internal/proposal"
	"github.com/littlemaker/configurador/internal/seed"
	"github.com/littlemaker/configurador/internal/store"
	"github.com/littlemaker/configurador/internal/users"
)

// settingsStore reads and replaces the tenant settings document.
type settingsStore interface {
	Load(ctx context.Context) (catalog.Settings, error)
	Save(ctx context.Context, s catalog.Settings) (catalog.Settings, error)
}

type server struct {
	auth      *authService
	proposals proposal.IProposalUseCase
	users     users.IUserUseCase
	settings  settingsStore
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	stats, err := seed.Run(ctx, database, seed.Config{SuperAdmins: cfg.SuperAdmins})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	if cfg.IsDev() {
		log.Printf("seed inserts=%d updates=%d", stats.Inserts, stats.Updates)
	}

	settings := store.NewSettingsRepository(database)
	userSvc := users.NewService(store.NewUserRepository(database), cfg.SuperAdmins)
	srv := &server{
		auth:      newAuthService(cfg.JWTSecret, userSvc),
		proposals: proposal.NewService(store.NewProposalRepository(database), settings),
		users:     userSvc,
		settings:  settings,
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.auth.middleware)

		r.Get("/me", s.handleMe)
		r.Get("/settings", s.handleSettingsGet)
		r.With(requireMaster).Put("/settings", s.handleSettingsPut)

		r.Post("/start", s.handleStart)
		r.Post("/quote", s.handleQuote)
		r.Post("/selection/toggle", s.handleToggle)
		r.Post("/recommendation", s.handleRecommendation)
		r.Post("/commercial", s.handleCommercial)

		r.Get("/proposals", s.handleProposalsList)
		r.Post("/proposals", s.handleProposalsCreate)
		r.Get("/proposals/{id}", s.handleProposalGet)
		r.Put("/proposals/{id}", s.handleProposalUpdate)
		r.Delete("/proposals/{id}", s.handleProposalDelete)
		r.Post("/proposals/{id}/copy", s.handleProposalCopy)
		r.Get("/proposals/{id}/text", s.handleProposalText)

		r.Group(func(r chi.Router) {
			r.Use(requireMaster)
			r.Get("/users", s.handleUsersList)
			r.Post("/users", s.handleUsersAdd)
			r.Post("/users/{email}/role", s.handleUsersToggleRole)
		})
	})

	return r
}

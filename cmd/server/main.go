package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"pms/internal/db"
	"pms/internal/domain/appraisal"
	"pms/internal/domain/auth"
	"pms/internal/domain/employee"
	"pms/internal/domain/kra"
	"pms/internal/domain/resignation"
	"pms/internal/domain/resource"
	"pms/internal/platform/config"
	"pms/internal/platform/email"
	appraisalhandler "pms/internal/transport/http/handlers/appraisal"
	authhandler "pms/internal/transport/http/handlers/auth"
	employeehandler "pms/internal/transport/http/handlers/employee"
	krahandler "pms/internal/transport/http/handlers/kra"
	resignationhandler "pms/internal/transport/http/handlers/resignation"
	resourcehandler "pms/internal/transport/http/handlers/resource"
	"pms/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	mailer := email.New(cfg)
	emailConfigured := cfg.EmailEnabled && cfg.SMTPHost != ""

	authService := auth.NewService(auth.NewStore(pool), mailer, cfg.JWTSecret,
		cfg.SessionTokenTTL, cfg.ResetTokenTTL, emailConfigured)
	resignationService := resignation.NewService(resignation.NewStore(pool), cfg.JWTSecret, cfg.SessionTokenTTL)
	kraService := kra.NewService(kra.NewStore(pool))
	appraisalService := appraisal.NewService(appraisal.NewStore(pool))
	employeeService := employee.NewService(employee.NewStore(pool))
	resourceService := resource.NewService(resource.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(authService).RegisterRoutes(r)
		resignationhandler.NewHandler(resignationService).RegisterRoutes(r)
		krahandler.NewHandler(kraService).RegisterRoutes(r)
		appraisalhandler.NewHandler(appraisalService).RegisterRoutes(r)
		employeehandler.NewHandler(employeeService).RegisterRoutes(r)
		resourcehandler.NewHandler(resourceService).RegisterRoutes(r)
	})

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

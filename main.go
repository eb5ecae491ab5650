package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tasktrail/tasktrail/authenticator"
	"github.com/tasktrail/tasktrail/config"
	"github.com/tasktrail/tasktrail/controllers"
	"github.com/tasktrail/tasktrail/database"
	authmiddleware "github.com/tasktrail/tasktrail/middleware"
	"github.com/tasktrail/tasktrail/repositories"
	"github.com/tasktrail/tasktrail/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Initialize database
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to initialize database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize services
	srvs := services.NewServices(repos, logger)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Build the credential verifier
	verifier, err := buildVerifier(cfg)
	if err != nil {
		logger.Error("failed to initialize credential verifier", "error", err)
		os.Exit(1)
	}

	// Set up router
	r := setupRouter(ctrl, verifier, authmiddleware.NewMetrics(), logger)

	logger.Info("tasktrail starting", "addr", cfg.Addr, "database", cfg.DatabasePath)

	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// buildVerifier selects the credential scheme: OIDC bearer tokens when
// an issuer is configured, the static basic-auth pair otherwise.
func buildVerifier(cfg config.Config) (authenticator.Verifier, error) {
	if cfg.OIDCIssuer != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return authenticator.NewBearerVerifier(ctx, authenticator.BearerConfig{
			Issuer:   cfg.OIDCIssuer,
			ClientID: cfg.OIDCClientID,
		})
	}
	return authenticator.NewBasicVerifier(cfg.AuthUsername, cfg.AuthPassword), nil
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, verifier authenticator.Verifier, metrics *authmiddleware.Metrics, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(authmiddleware.Recoverer(logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(authmiddleware.CORS)
	r.Use(metrics.Instrument)

	// Unmatched method+path combinations all map to the JSON 404
	r.NotFound(controllers.NotFound)
	r.MethodNotAllowed(controllers.NotFound)

	// Operational endpoints, no auth
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy", "service": "tasktrail"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// API routes are served both bare and under /api, mirroring the
	// routing prefix clients may or may not include
	api := func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth(verifier))

		r.Get("/tasks", ctrl.Task.List)
		r.Post("/tasks", ctrl.Task.Create)
		r.Put("/tasks/{id}", ctrl.Task.Update)
		r.Delete("/tasks/{id}", ctrl.Task.Delete)
		r.Get("/logs", ctrl.Audit.List)
	}
	r.Group(api)
	r.Route("/api", api)

	return r
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/juju/clock"

	"github.com/blogem/clocklog/config"
	"github.com/blogem/clocklog/controllers"
	"github.com/blogem/clocklog/database"
	metricsmiddleware "github.com/blogem/clocklog/middleware"
	"github.com/blogem/clocklog/repositories"
	"github.com/blogem/clocklog/services"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.InitializeDatabase(database.Options{
		Driver:       cfg.DBDriver,
		Path:         cfg.DBPath,
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos := repositories.NewRepositories(db)
	srvs := services.NewServices(repos, clock.WallClock)
	ctrl := controllers.NewControllers(srvs)
	metrics := metricsmiddleware.NewMetrics()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: setupRouter(ctrl, metrics, cfg.RequestTimeout),
	}

	fmt.Printf("🚀 Clock log server starting on port %s\n", cfg.Port)
	fmt.Printf("🗃️  Database: %s (%s)\n", cfg.DBPath, cfg.DBDriver)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server failed: %v", err)
		}
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Failed to shut down cleanly: %v", err)
		}
	}
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, metrics *metricsmiddleware.Metrics, timeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(metrics.Instrument)

	// Any origin, method and header
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", ctrl.Health.Show)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/log", ctrl.Log.Create)
		r.Get("/time", ctrl.Time.Show)
	})

	return r
}

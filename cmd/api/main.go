package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/leaselightning/lease-lightning/internal/application"
	appapplicants "github.com/leaselightning/lease-lightning/internal/application/applicants"
	"github.com/leaselightning/lease-lightning/internal/config"
	"github.com/leaselightning/lease-lightning/internal/infra/agent"
	"github.com/leaselightning/lease-lightning/internal/infra/httpserver"
	"github.com/leaselightning/lease-lightning/internal/infra/jsonstore"
	"github.com/leaselightning/lease-lightning/internal/logger"
	"github.com/leaselightning/lease-lightning/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	// init store
	repo := jsonstore.New(cfg.Store.Path)

	// init decision agent
	engine := agent.New(cfg.AgentDelay())

	// init service
	svc := &appapplicants.Service{
		Repo:   repo,
		Engine: engine,
		Clock:  application.SystemClock{},
		Log:    log,
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware(log))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"store": middleware.HealthCheckerFunc(repo.Check),
	}))
	mux.Handle("/metrics", middleware.MetricsHandler())
	mux.Mount("/", httpserver.NewRouter(svc, log))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Info("api listening", zap.String("addr", addr), zap.String("store", cfg.Store.Path))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down api server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

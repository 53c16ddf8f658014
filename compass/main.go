package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"compass/compass/config"
	"compass/compass/controllers"
	"compass/compass/middlewares"
	"compass/compass/routes"
	"compass/compass/services/research"
	"compass/compass/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error: "+err.Error())
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, "logger error: "+err.Error())
		os.Exit(1)
	}
	defer logging.Sync()

	if err := cfg.Validate(); err != nil {
		logging.ErrorLogger.Error("invalid configuration", zap.Error(err))
		fmt.Fprintln(os.Stderr, "invalid configuration: "+err.Error())
		os.Exit(1)
	}

	pipeline, closeFetcher, err := research.NewFromConfig(cfg)
	if err != nil {
		logging.ErrorLogger.Error("pipeline setup error", zap.Error(err))
		os.Exit(1)
	}
	defer closeFetcher()

	healthCtrl := controllers.NewHealthController(cfg)
	researchCtrl := controllers.NewResearchController(pipeline)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", routes.IndexHandler)
	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/research", routes.ResearchRoutes(researchCtrl))

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"meshcode/internal/api"
	"meshcode/internal/api/handlers"
	"meshcode/internal/config"
	"meshcode/internal/geo"
	"meshcode/internal/logging"
	"meshcode/internal/metrics"
	"meshcode/internal/repository/memory"
	"meshcode/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	m := metrics.New()

	// Initialize repositories
	pointRepo := memory.NewPointRepository()

	// Initialize spatial index
	spatialIndex := geo.NewSpatialIndex(cfg.IndexLevel())

	// Initialize services
	meshService := services.NewMeshService(cfg, m)
	notificationService := services.NewNotificationService(logger, m)
	locationService := services.NewLocationService(
		spatialIndex,
		pointRepo,
		notificationService,
		m,
		cfg.Index.DefaultSearchRadiusMeters,
		cfg.Mesh.MaxRadiusMeters,
	)

	// Initialize handlers
	meshHandler := handlers.NewMeshHandler(meshService)
	searchHandler := handlers.NewSearchHandler(meshService)
	locationHandler := handlers.NewLocationHandler(locationService)

	// Setup router
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(meshHandler, searchHandler, locationHandler, m)
	engine := api.NewEngine(router, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting meshcode server",
			"addr", cfg.Server.Port,
			"default_level", cfg.DefaultLevel().String(),
			"index_level", cfg.IndexLevel().String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

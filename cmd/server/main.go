// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VictorRSilva05/proactive-inventory/internal/alert"
	"github.com/VictorRSilva05/proactive-inventory/internal/api"
	"github.com/VictorRSilva05/proactive-inventory/internal/cache"
	"github.com/VictorRSilva05/proactive-inventory/internal/config"
	"github.com/VictorRSilva05/proactive-inventory/internal/forecast"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository/postgres"
	"github.com/VictorRSilva05/proactive-inventory/internal/service"
	"github.com/VictorRSilva05/proactive-inventory/internal/storage"
	"github.com/VictorRSilva05/proactive-inventory/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	productRepo := postgres.NewProductRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	saleRepo := postgres.NewSaleRepository(db)
	forecastRepo := postgres.NewForecastRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Redis unavailable, dashboard cache disabled")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	archive, err := storage.NewImportArchive(cfg.Archive)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Import archive unavailable, files will not be archived")
		archive = storage.NewNoopImportArchive()
	}

	engine := forecast.NewEngine(saleRepo, forecastRepo)
	evaluator := alert.NewEvaluator(productRepo, saleRepo, forecastRepo, alertRepo)
	trigger := service.NewTrigger(engine, evaluator, dashboardCache, cfg.App.ObservationDays, cfg.App.HorizonDays)

	services := &api.Services{
		Products:     service.NewProductService(productRepo, saleRepo, trigger),
		Categories:   service.NewCategoryService(categoryRepo),
		Dashboard:    service.NewDashboardService(dashboardRepo, alertRepo, saleRepo, forecastRepo, dashboardCache),
		Import:       service.NewImportService(productRepo, categoryRepo, saleRepo, archive, trigger),
		Forecasts:    engine,
		Alerts:       evaluator,
		ForecastRepo: forecastRepo,
	}

	router := api.NewRouter(cfg, services)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

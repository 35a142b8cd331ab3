// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/VictorRSilva05/proactive-inventory/internal/alert"
	"github.com/VictorRSilva05/proactive-inventory/internal/api/handlers"
	"github.com/VictorRSilva05/proactive-inventory/internal/api/middleware"
	"github.com/VictorRSilva05/proactive-inventory/internal/config"
	"github.com/VictorRSilva05/proactive-inventory/internal/forecast"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
	"github.com/VictorRSilva05/proactive-inventory/internal/service"
)

// Services bundles everything the router exposes over HTTP.
type Services struct {
	Products   *service.ProductService
	Categories *service.CategoryService
	Dashboard  *service.DashboardService
	Import     *service.ImportService
	Forecasts  *forecast.Engine
	Alerts     *alert.Evaluator

	ForecastRepo repository.ForecastRepository
}

func NewRouter(cfg *config.Config, services *Services) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(cfg.Server.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	productHandler := handlers.NewProductHandler(services.Products)
	forecastHandler := handlers.NewForecastHandler(services.Forecasts, services.ForecastRepo, cfg.App.ObservationDays, cfg.App.HorizonDays)
	productGroup := apiGroup.Group("/products")
	{
		productGroup.GET("", productHandler.List)
		productGroup.POST("", productHandler.Create)
		productGroup.GET("/:id", productHandler.Get)
		productGroup.PUT("/:id", productHandler.Update)
		productGroup.DELETE("/:id", productHandler.Delete)
		productGroup.GET("/:id/sales", productHandler.ListSales)
		productGroup.GET("/:id/forecasts", forecastHandler.ListForProduct)
		productGroup.POST("/:id/forecasts", forecastHandler.Generate)
	}

	categoryHandler := handlers.NewCategoryHandler(services.Categories)
	categoryGroup := apiGroup.Group("/categories")
	{
		categoryGroup.GET("", categoryHandler.List)
		categoryGroup.POST("", categoryHandler.Create)
		categoryGroup.GET("/:id", categoryHandler.Get)
		categoryGroup.PUT("/:id", categoryHandler.Update)
		categoryGroup.DELETE("/:id", categoryHandler.Delete)
	}

	apiGroup.GET("/forecasts", forecastHandler.List)

	alertHandler := handlers.NewAlertHandler(services.Alerts)
	alertGroup := apiGroup.Group("/alerts")
	{
		alertGroup.GET("", alertHandler.List)
		alertGroup.POST("/sweep", alertHandler.Sweep)
		alertGroup.POST("/:id/resolve", alertHandler.Resolve)
	}

	dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
	dashboardGroup := apiGroup.Group("/dashboard")
	{
		dashboardGroup.GET("/summary", dashboardHandler.GetSummary)
		dashboardGroup.GET("/top_alerts", dashboardHandler.GetTopAlerts)
		dashboardGroup.GET("/alert_distribution", dashboardHandler.GetAlertDistribution)
		dashboardGroup.GET("/demand_chart/:id", dashboardHandler.GetDemandChart)
	}

	importHandler := handlers.NewImportHandler(services.Import, cfg.App.UploadDir)
	apiGroup.POST("/import/sales", importHandler.UploadSales)

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}

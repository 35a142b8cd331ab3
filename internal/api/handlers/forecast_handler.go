// internal/api/handlers/forecast_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/VictorRSilva05/proactive-inventory/internal/forecast"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

type ForecastHandler struct {
	engine    *forecast.Engine
	forecasts repository.ForecastRepository

	defaultObservationDays int
	defaultHorizonDays     int
}

func NewForecastHandler(engine *forecast.Engine, forecasts repository.ForecastRepository, observationDays, horizonDays int) *ForecastHandler {
	if observationDays <= 0 {
		observationDays = 30
	}
	if horizonDays <= 0 {
		horizonDays = 30
	}
	return &ForecastHandler{
		engine:                 engine,
		forecasts:              forecasts,
		defaultObservationDays: observationDays,
		defaultHorizonDays:     horizonDays,
	}
}

// List returns the full forecast log, newest first.
func (h *ForecastHandler) List(c *gin.Context) {
	forecasts, err := h.forecasts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch forecasts"})
		return
	}
	c.JSON(http.StatusOK, forecasts)
}

// ListForProduct returns a product's forecasts over the trailing window.
func (h *ForecastHandler) ListForProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "90"))
	if days <= 0 {
		days = 90
	}
	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)

	forecasts, err := h.forecasts.ListForProduct(c.Request.Context(), id, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch forecasts"})
		return
	}
	c.JSON(http.StatusOK, forecasts)
}

// Generate computes and stores a fresh forecast for one product. A product
// without sale history yields 204: nothing was computed, nothing was stored.
func (h *ForecastHandler) Generate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	observationDays, _ := strconv.Atoi(c.DefaultQuery("observation_days", strconv.Itoa(h.defaultObservationDays)))
	if observationDays <= 0 {
		observationDays = h.defaultObservationDays
	}
	horizonDays, _ := strconv.Atoi(c.DefaultQuery("horizon_days", strconv.Itoa(h.defaultHorizonDays)))
	if horizonDays <= 0 {
		horizonDays = h.defaultHorizonDays
	}

	result, err := h.engine.Generate(c.Request.Context(), id, observationDays, horizonDays)
	if err != nil {
		log.Error().Err(err).Int64("product_id", id).Msg("failed to generate forecast")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate forecast"})
		return
	}
	if result == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, result)
}

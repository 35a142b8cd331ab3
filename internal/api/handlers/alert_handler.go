// internal/api/handlers/alert_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/VictorRSilva05/proactive-inventory/internal/alert"
	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
)

type AlertHandler struct {
	evaluator *alert.Evaluator
}

func NewAlertHandler(evaluator *alert.Evaluator) *AlertHandler {
	return &AlertHandler{evaluator: evaluator}
}

// List returns every alert, unresolved and resolved, newest first. An
// optional kind query narrows the result to one condition.
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.evaluator.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}

	if raw := c.Query("kind"); raw != "" {
		kind, ok := domain.ParseAlertKind(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown alert kind"})
			return
		}
		filtered := make([]domain.Alert, 0, len(alerts))
		for _, a := range alerts {
			if a.Kind == kind {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}

	c.JSON(http.StatusOK, alerts)
}

// Resolve marks an alert as handled by an operator. Resolving is final: a
// later sweep opens a new alert if the condition still holds.
func (h *AlertHandler) Resolve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.evaluator.Resolve(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve alert"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Sweep re-evaluates every product immediately.
func (h *AlertHandler) Sweep(c *gin.Context) {
	if err := h.evaluator.EvaluateAll(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("alert sweep failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "alert sweep failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sweep completed"})
}

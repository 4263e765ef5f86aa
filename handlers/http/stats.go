package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentesana-server/middleware"
	"mentesana-server/usecases"
)

type StatsHandler struct {
	stats  *usecases.StatsUseCase
	health *usecases.HealthUseCase
}

func NewStatsHandler(stats *usecases.StatsUseCase, health *usecases.HealthUseCase) *StatsHandler {
	return &StatsHandler{stats: stats, health: health}
}

// Summary handles GET /api/stats/summary
func (h *StatsHandler) Summary(c *gin.Context) {
	summary, err := h.stats.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Health handles GET /api/health
func (h *StatsHandler) Health(c *gin.Context) {
	status, ok := h.health.Check(c.Request.Context())
	if !ok {
		c.JSON(http.StatusInternalServerError, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentesana-server/logger"
	"mentesana-server/services"
)

type CacheHandler struct {
	catalogs *services.CatalogService
}

func NewCacheHandler(catalogs *services.CatalogService) *CacheHandler {
	return &CacheHandler{
		catalogs: catalogs,
	}
}

// RefreshCache reloads every catalog from the database.
func (h *CacheHandler) RefreshCache(c *gin.Context) {
	h.catalogs.ClearCache()
	if err := h.catalogs.Refresh(c.Request.Context()); err != nil {
		logger.Error("catalog refresh failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not refresh catalogs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  h.catalogs.GetCacheStats(),
	})
}

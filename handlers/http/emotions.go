package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentesana-server/middleware"
	"mentesana-server/services"
	"mentesana-server/usecases"
)

type EmotionHandler struct {
	useCase  *usecases.EmotionUseCase
	catalogs *services.CatalogService
}

func NewEmotionHandler(useCase *usecases.EmotionUseCase, catalogs *services.CatalogService) *EmotionHandler {
	return &EmotionHandler{useCase: useCase, catalogs: catalogs}
}

type logEmotionRequest struct {
	Tipo  string `json:"tipo"`
	Notas string `json:"notas"`
}

// ListEmotions handles GET /api/emotions
func (h *EmotionHandler) ListEmotions(c *gin.Context) {
	list, err := h.catalogs.Emotions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Log handles POST /api/emotions/log
func (h *EmotionHandler) Log(c *gin.Context) {
	var req logEmotionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.useCase.Log(c.Request.Context(), middleware.UserID(c), req.Tipo, req.Notas); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Saved"})
}

// History handles GET /api/emotions/history
func (h *EmotionHandler) History(c *gin.Context) {
	entries, err := h.useCase.History(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Calendar handles GET /api/calendar/emotions
func (h *EmotionHandler) Calendar(c *gin.Context) {
	entries, err := h.useCase.Calendar(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

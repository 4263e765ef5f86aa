package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentesana-server/middleware"
	"mentesana-server/services"
	"mentesana-server/usecases"
)

type ExerciseHandler struct {
	useCase  *usecases.ExerciseUseCase
	catalogs *services.CatalogService
}

func NewExerciseHandler(useCase *usecases.ExerciseUseCase, catalogs *services.CatalogService) *ExerciseHandler {
	return &ExerciseHandler{useCase: useCase, catalogs: catalogs}
}

type completeExerciseRequest struct {
	IdEjercicio flexInt `json:"idEjercicio"`
}

type gratitudeRequest struct {
	Gratitud1 string `json:"gratitud1"`
	Gratitud2 string `json:"gratitud2"`
	Gratitud3 string `json:"gratitud3"`
}

// ListExercises handles GET /api/exercises
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	list, err := h.catalogs.Exercises(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Complete handles POST /api/exercises/complete
func (h *ExerciseHandler) Complete(c *gin.Context) {
	var req completeExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.useCase.Complete(c.Request.Context(), middleware.UserID(c), int64(req.IdEjercicio))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Gratitude handles POST /api/exercises/gratitude
func (h *ExerciseHandler) Gratitude(c *gin.Context) {
	var req gratitudeRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.useCase.SubmitGratitude(c.Request.Context(), middleware.UserID(c),
		[3]string{req.Gratitud1, req.Gratitud2, req.Gratitud3})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

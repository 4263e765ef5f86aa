package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentesana-server/middleware"
	"mentesana-server/usecases"
)

type ChallengeHandler struct {
	useCase *usecases.ChallengeUseCase
}

func NewChallengeHandler(useCase *usecases.ChallengeUseCase) *ChallengeHandler {
	return &ChallengeHandler{useCase: useCase}
}

type createChallengeRequest struct {
	Titulo string `json:"Titulo"`
}

type updateChallengeRequest struct {
	Cumplido bool `json:"Cumplido"`
}

// List handles GET /api/challenges
func (h *ChallengeHandler) List(c *gin.Context) {
	list, err := h.useCase.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create handles POST /api/challenges
func (h *ChallengeHandler) Create(c *gin.Context) {
	var req createChallengeRequest
	if !bindJSON(c, &req) {
		return
	}
	challenge, err := h.useCase.Create(c.Request.Context(), middleware.UserID(c), req.Titulo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// Update handles PUT /api/challenges/:id
func (h *ChallengeHandler) Update(c *gin.Context) {
	var req updateChallengeRequest
	if !bindJSON(c, &req) {
		return
	}
	challenge, err := h.useCase.SetFulfilled(c.Request.Context(), middleware.UserID(c), pathID(c), req.Cumplido)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// Delete handles DELETE /api/challenges/:id
func (h *ChallengeHandler) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), middleware.UserID(c), pathID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted"})
}

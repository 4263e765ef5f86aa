package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentesana-server/entities"
	"mentesana-server/middleware"
	"mentesana-server/services"
	"mentesana-server/usecases"
)

type PetHandler struct {
	useCase  *usecases.PetUseCase
	catalogs *services.CatalogService
}

func NewPetHandler(useCase *usecases.PetUseCase, catalogs *services.CatalogService) *PetHandler {
	return &PetHandler{useCase: useCase, catalogs: catalogs}
}

type selectPetRequest struct {
	Tipo string `json:"Tipo"`
}

type updatePetRequest struct {
	IdUsuarioMascota flexInt `json:"IdUsuarioMascota"`
	entities.PetStats
}

// Current handles GET /api/pets/current. The body is null when the user has
// no active pet.
func (h *PetHandler) Current(c *gin.Context) {
	pet, err := h.useCase.GetActive(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

// ListSpecies handles GET /api/pets/species
func (h *PetHandler) ListSpecies(c *gin.Context) {
	list, err := h.catalogs.Species(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Select handles POST /api/pets/select
func (h *PetHandler) Select(c *gin.Context) {
	var req selectPetRequest
	if !bindJSON(c, &req) {
		return
	}
	pet, err := h.useCase.Select(c.Request.Context(), middleware.UserID(c), req.Tipo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

// Update handles PUT /api/pets/stats
func (h *PetHandler) Update(c *gin.Context) {
	var req updatePetRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.useCase.UpdateStats(c.Request.Context(), middleware.UserID(c), int64(req.IdUsuarioMascota), req.PetStats); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentesana-server/entities"
	"mentesana-server/middleware"
	"mentesana-server/usecases"
)

type ProfileHandler struct {
	useCase *usecases.ProfileUseCase
}

func NewProfileHandler(useCase *usecases.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{useCase: useCase}
}

// saveProfileRequest also carries password-change fields the profile form
// sends; they are ignored here.
type saveProfileRequest struct {
	IdUsuario                flexInt `json:"idUsuario"`
	NombreCompleto           *string `json:"nombreCompleto"`
	CorreoElectronico        *string `json:"correoElectronico"`
	FechaDeNacimiento        *string `json:"fechaDeNacimiento"`
	Genero                   *string `json:"genero"`
	Biografia                *string `json:"biografia"`
	ContrasenaActual         string  `json:"contrasenaActual"`
	NuevaContrasena          string  `json:"nuevaContrasena"`
	ConfirmarNuevaContrasena string  `json:"confirmarNuevaContrasena"`
}

// Save handles POST /api/profile
func (h *ProfileHandler) Save(c *gin.Context) {
	var req saveProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	profile := &entities.Profile{
		IdUsuario:         int64(req.IdUsuario),
		NombreCompleto:    req.NombreCompleto,
		CorreoElectronico: req.CorreoElectronico,
		FechaDeNacimiento: req.FechaDeNacimiento,
		Genero:            req.Genero,
		Biografia:         req.Biografia,
	}
	if err := h.useCase.Save(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile saved"})
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.useCase.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

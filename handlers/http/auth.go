package httpHandler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentesana-server/usecases"
)

type AuthHandler struct {
	useCase *usecases.AuthUseCase
}

func NewAuthHandler(useCase *usecases.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

// RegisterRequest accepts the English and Spanish field names the web
// client has used over time.
type RegisterRequest struct {
	Nombre     string `json:"nombre"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Correo     string `json:"correo"`
	Password   string `json:"password"`
	Contrasena string `json:"contrasena"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Correo     string `json:"correo"`
	Password   string `json:"password"`
	Contrasena string `json:"contrasena"`
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.useCase.Register(c.Request.Context(), usecases.RegisterInput{
		Nombre:     firstNonEmpty(req.Nombre, req.Name),
		Correo:     firstNonEmpty(req.Email, req.Correo),
		Contrasena: firstNonEmpty(req.Password, req.Contrasena),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.useCase.Login(c.Request.Context(),
		firstNonEmpty(req.Email, req.Correo),
		firstNonEmpty(req.Password, req.Contrasena))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

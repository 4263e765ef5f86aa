package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentesana-server/apperr"
	"mentesana-server/db"
)

func TestRegisterAndLogin(t *testing.T) {
	for _, mode := range txModes {
		t.Run(mode.name, func(t *testing.T) {
			f := newFixture(t, mode.native)
			ctx := context.Background()

			reg, err := f.auth.Register(ctx, RegisterInput{Nombre: " Ana ", Correo: " ana@x.com ", Contrasena: "s3creto"})
			require.NoError(t, err)
			assert.NotEmpty(t, reg.Token)
			assert.Equal(t, "Ana", reg.User.Nombre)
			assert.Equal(t, "ana@x.com", reg.User.Correo)
			assert.Equal(t, 1, reg.User.Nivel)
			assert.Equal(t, 0, reg.User.Puntos)

			claims, err := f.auth.Tokens.Verify(reg.Token)
			require.NoError(t, err)
			assert.Equal(t, reg.User.IdUsuario, claims.UserID)

			assert.Equal(t, int64(1), f.count(t, "SELECT COUNT(*) AS total FROM Perfil WHERE IdUsuario = @id", db.Params{"id": reg.User.IdUsuario}))

			login, err := f.auth.Login(ctx, "ana@x.com", "s3creto")
			require.NoError(t, err)
			assert.Equal(t, reg.User.IdUsuario, login.User.IdUsuario)
			assert.NotEmpty(t, login.Token)
		})
	}
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.register(t, "ana@x.com")

	_, err := f.auth.Register(ctx, RegisterInput{Nombre: "Otra", Correo: "ana@x.com", Contrasena: "x"})
	assertKind(t, apperr.KindConflict, err)
	assert.Equal(t, int64(1), f.count(t, "SELECT COUNT(*) AS total FROM Usuarios", nil))

	_, err = f.auth.Register(ctx, RegisterInput{Nombre: "", Correo: "b@x.com", Contrasena: "x"})
	assertKind(t, apperr.KindBadRequest, err)
	_, err = f.auth.Register(ctx, RegisterInput{Nombre: "B", Correo: "b@x.com", Contrasena: "   "})
	assertKind(t, apperr.KindBadRequest, err)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.register(t, "ana@x.com")

	tests := []struct {
		name     string
		email    string
		password string
		kind     apperr.Kind
	}{
		{"missing email", "", "s3creto", apperr.KindBadRequest},
		{"missing password", "ana@x.com", "", apperr.KindBadRequest},
		{"unknown email", "nadie@x.com", "s3creto", apperr.KindNotFound},
		{"wrong password", "ana@x.com", "otro", apperr.KindUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Login(ctx, tt.email, tt.password)
			assertKind(t, tt.kind, err)
		})
	}
}

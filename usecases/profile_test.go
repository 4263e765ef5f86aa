package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentesana-server/apperr"
	"mentesana-server/entities"
)

func strPtr(s string) *string { return &s }

func TestProfileSaveAndGet(t *testing.T) {
	f := newFixture(t, true)
	uc := NewProfileUseCase(f.db)
	ctx := context.Background()
	user := f.register(t, "ana@x.com")

	assertKind(t, apperr.KindBadRequest, uc.Save(ctx, &entities.Profile{}))
	assertKind(t, apperr.KindNotFound, uc.Save(ctx, &entities.Profile{IdUsuario: 999}))

	require.NoError(t, uc.Save(ctx, &entities.Profile{
		IdUsuario:      user.IdUsuario,
		NombreCompleto: strPtr("Ana Pérez"),
		Genero:         strPtr("F"),
	}))
	require.NoError(t, uc.Save(ctx, &entities.Profile{
		IdUsuario:      user.IdUsuario,
		NombreCompleto: strPtr("Ana P."),
		Biografia:      strPtr("Me gusta caminar"),
	}))

	profile, err := uc.Get(ctx, user.IdUsuario)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Ana P.", *profile.NombreCompleto)
	assert.Equal(t, "Me gusta caminar", *profile.Biografia)
	assert.Nil(t, profile.Genero)

	missing, err := uc.Get(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

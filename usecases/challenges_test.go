package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentesana-server/apperr"
	"mentesana-server/entities"
)

func TestChallengeLifecycle(t *testing.T) {
	f := newFixture(t, true)
	uc := NewChallengeUseCase(f.db)
	ctx := context.Background()
	owner := f.register(t, "ana@x.com")
	other := f.register(t, "luis@x.com")

	_, err := uc.Create(ctx, owner.IdUsuario, "  ")
	assertKind(t, apperr.KindBadRequest, err)

	created, err := uc.Create(ctx, owner.IdUsuario, "Caminar 20 minutos")
	require.NoError(t, err)
	assert.Equal(t, entities.ChallengePending, created.Estado)
	assert.Nil(t, created.FechaCumplido)

	list, err := uc.List(ctx, owner.IdUsuario)
	require.NoError(t, err)
	require.Len(t, list, 1)

	others, err := uc.List(ctx, other.IdUsuario)
	require.NoError(t, err)
	assert.Empty(t, others)

	_, err = uc.SetFulfilled(ctx, other.IdUsuario, created.IdReto, true)
	assertKind(t, apperr.KindNotFound, err)

	done, err := uc.SetFulfilled(ctx, owner.IdUsuario, created.IdReto, true)
	require.NoError(t, err)
	assert.Equal(t, entities.ChallengeFulfilled, done.Estado)
	assert.NotNil(t, done.FechaCumplido)

	failed, err := uc.SetFulfilled(ctx, owner.IdUsuario, created.IdReto, false)
	require.NoError(t, err)
	assert.Equal(t, entities.ChallengeFailed, failed.Estado)
	assert.Nil(t, failed.FechaCumplido)

	assertKind(t, apperr.KindNotFound, uc.Delete(ctx, other.IdUsuario, created.IdReto))
	require.NoError(t, uc.Delete(ctx, owner.IdUsuario, created.IdReto))
	assertKind(t, apperr.KindNotFound, uc.Delete(ctx, owner.IdUsuario, created.IdReto))
	assertKind(t, apperr.KindBadRequest, uc.Delete(ctx, owner.IdUsuario, 0))
}

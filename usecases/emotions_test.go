package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentesana-server/apperr"
	"mentesana-server/db"
	"mentesana-server/entities"
)

func TestLogEmotionAndHistory(t *testing.T) {
	f := newFixture(t, true)
	uc := NewEmotionUseCase(f.db, time.FixedZone("CST", -6*60*60))
	ctx := context.Background()
	user := f.register(t, "ana@x.com")

	assertKind(t, apperr.KindBadRequest, uc.Log(ctx, user.IdUsuario, "eufórico", ""))
	assertKind(t, apperr.KindBadRequest, uc.Log(ctx, user.IdUsuario, "", ""))

	require.NoError(t, uc.Log(ctx, user.IdUsuario, "TRISTE", "lluvia"))

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, uc.EmotionRepo.Log(ctx, &entities.EmotionLogEntry{IdUsuario: user.IdUsuario, IdEmocion: 1, FechaRegistro: at}))

	history, err := uc.History(ctx, user.IdUsuario)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Triste", history[0].Nombre)
	assert.Equal(t, "lluvia", history[0].Nota)
	assert.Equal(t, "Feliz", history[1].Nombre)
	assert.Equal(t, "2024-01-01", history[1].Fecha)
	assert.Equal(t, "21:04:05", history[1].Hora)

	calendar, err := uc.Calendar(ctx, user.IdUsuario)
	require.NoError(t, err)
	require.Len(t, calendar, 2)
	assert.Equal(t, "Feliz", calendar[1].Emocion)
	assert.Equal(t, "#FFD700", calendar[1].Color)
	assert.Equal(t, "2024-01-01", calendar[1].Fecha)
	assert.Equal(t, int64(2), f.count(t, "SELECT COUNT(*) AS total FROM RegistroEmocional WHERE IdUsuario = @u", db.Params{"u": user.IdUsuario}))
}

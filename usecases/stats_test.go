package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentesana-server/entities"
)

func TestStatsSummary(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	user := f.register(t, "ana@x.com")
	other := f.register(t, "luis@x.com")

	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	uc := NewStatsUseCase(f.db, time.UTC)
	uc.now = func() time.Time { return now }

	emotions := NewEmotionUseCase(f.db, time.UTC)
	for _, at := range []time.Time{
		now.Add(-time.Hour),
		now.Add(-2 * time.Hour),
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -6).Add(-14 * time.Hour),
		now.AddDate(0, 0, -7),
	} {
		require.NoError(t, emotions.EmotionRepo.Log(ctx, &entities.EmotionLogEntry{IdUsuario: user.IdUsuario, IdEmocion: 1, FechaRegistro: at}))
	}
	require.NoError(t, emotions.EmotionRepo.Log(ctx, &entities.EmotionLogEntry{IdUsuario: other.IdUsuario, IdEmocion: 2, FechaRegistro: now}))

	exercises := NewExerciseUseCase(f.db, nil)
	_, err := exercises.Complete(ctx, user.IdUsuario, 1)
	require.NoError(t, err)
	_, err = exercises.SubmitGratitude(ctx, user.IdUsuario, [3]string{"a", "b", "c"})
	require.NoError(t, err)

	challenges := NewChallengeUseCase(f.db)
	done, err := challenges.Create(ctx, user.IdUsuario, "Leer")
	require.NoError(t, err)
	_, err = challenges.SetFulfilled(ctx, user.IdUsuario, done.IdReto, true)
	require.NoError(t, err)
	_, err = challenges.Create(ctx, user.IdUsuario, "Correr")
	require.NoError(t, err)

	summary, err := uc.Summary(ctx, user.IdUsuario)
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.EmocionesRegistradas)
	assert.Equal(t, int64(2), summary.EjerciciosRealizados)
	assert.Equal(t, int64(1), summary.RetosCompletados)
	// May 10, May 9 and May 4 fall inside the window; May 3 does not.
	assert.Equal(t, 3, summary.DiasConsecutivos)
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t, true)
	uc := NewHealthUseCase(f.db)

	status, ok := uc.Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "OK", status.Status)
	assert.Equal(t, "SQLite", status.Database)
	assert.NotEmpty(t, status.Timestamp)

	require.NoError(t, f.db.Close())
	status, ok = uc.Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "Error", status.Status)
	assert.NotEmpty(t, status.Error)
}

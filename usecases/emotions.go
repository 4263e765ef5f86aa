package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"mentesana-server/apperr"
	"mentesana-server/db"
	"mentesana-server/entities"
	"mentesana-server/repositories"
)

type EmotionUseCase struct {
	EmotionRepo repositories.EmotionRepository
	Location    *time.Location
}

func NewEmotionUseCase(database db.Database, loc *time.Location) *EmotionUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &EmotionUseCase{
		EmotionRepo: repositories.NewEmotionSqlRepository(database),
		Location:    loc,
	}
}

// Log stores an entry for the emotion named tipo (any letter case).
func (uc *EmotionUseCase) Log(ctx context.Context, userID int64, tipo, nota string) error {
	tipo = strings.TrimSpace(tipo)
	if tipo == "" {
		return apperr.BadRequest("Invalid emotion type")
	}
	emotion, err := uc.EmotionRepo.GetByName(ctx, tipo)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.BadRequest("Invalid emotion type")
	}
	if err != nil {
		return failure("Could not log emotion", err)
	}

	entry := &entities.EmotionLogEntry{IdUsuario: userID, IdEmocion: emotion.IdEmocion, Nota: strings.TrimSpace(nota)}
	if err := uc.EmotionRepo.Log(ctx, entry); err != nil {
		return failure("Could not log emotion", err)
	}
	return nil
}

// History returns the user's entries, newest first, with local date and time.
func (uc *EmotionUseCase) History(ctx context.Context, userID int64) ([]entities.EmotionHistoryEntry, error) {
	entries, err := uc.EmotionRepo.History(ctx, userID)
	if err != nil {
		return nil, failure("Could not load history", err)
	}
	for i := range entries {
		entries[i].Fecha = localDate(entries[i].FechaRegistro, uc.Location)
		entries[i].Hora = localClock(entries[i].FechaRegistro, uc.Location)
	}
	return entries, nil
}

// Calendar is History shaped for the calendar view.
func (uc *EmotionUseCase) Calendar(ctx context.Context, userID int64) ([]entities.CalendarEntry, error) {
	entries, err := uc.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.CalendarEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, entities.CalendarEntry{
			Emocion:       e.Nombre,
			Color:         e.Color,
			Icono:         e.Icono,
			Nota:          e.Nota,
			FechaRegistro: e.FechaRegistro,
			Fecha:         e.Fecha,
			Hora:          e.Hora,
		})
	}
	return out, nil
}

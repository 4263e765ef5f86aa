package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mentesana-server/apperr"
	"mentesana-server/db"
	"mentesana-server/entities"
	"mentesana-server/repositories"
)

type ExerciseUseCase struct {
	DB           db.Database
	ExerciseRepo repositories.ExerciseRepository
	Notifier     Notifier
}

func NewExerciseUseCase(database db.Database, notifier Notifier) *ExerciseUseCase {
	return &ExerciseUseCase{
		DB:           database,
		ExerciseRepo: repositories.NewExerciseSqlRepository(database),
		Notifier:     notifierOrNop(notifier),
	}
}

// Complete records a finished exercise and awards its points.
func (uc *ExerciseUseCase) Complete(ctx context.Context, userID, exerciseID int64) (*entities.ExerciseResult, error) {
	if exerciseID <= 0 {
		return nil, apperr.BadRequest("idEjercicio is required")
	}
	if _, err := uc.ExerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.BadRequest("Exercise not found")
		}
		return nil, failure("Could not save exercise", err)
	}

	session := &entities.ExerciseSession{IdUsuario: userID, IdEjercicio: exerciseID, Completado: true}
	if err := uc.record(ctx, session); err != nil {
		return nil, failure("Could not save exercise", err)
	}
	return uc.result("Exercise saved", session), nil
}

// SubmitGratitude stores three gratitude answers as a session of the
// gratitude exercise and awards its points.
func (uc *ExerciseUseCase) SubmitGratitude(ctx context.Context, userID int64, answers [3]string) (*entities.ExerciseResult, error) {
	for i := range answers {
		answers[i] = strings.TrimSpace(answers[i])
		if answers[i] == "" {
			return nil, apperr.BadRequest("All three gratitude entries are required")
		}
	}
	note := fmt.Sprintf("1. %s | 2. %s | 3. %s", answers[0], answers[1], answers[2])

	session := &entities.ExerciseSession{
		IdUsuario:         userID,
		IdEjercicio:       db.GratitudeExerciseID,
		Completado:        true,
		RespuestaGratitud: &note,
	}
	if err := uc.record(ctx, session); err != nil {
		return nil, failure("Could not save gratitude", err)
	}
	return uc.result("Gratitude saved", session), nil
}

// record stores the session and the points together.
func (uc *ExerciseUseCase) record(ctx context.Context, session *entities.ExerciseSession) error {
	err := uc.DB.Atomic(ctx, func(tx db.Tx) error {
		if err := repositories.NewExerciseSqlRepository(tx).CreateSession(ctx, session); err != nil {
			return err
		}
		err := repositories.NewUserSqlRepository(tx).AddPoints(ctx, session.IdUsuario, entities.PointsPerExercise)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	})
	if err != nil {
		return err
	}
	uc.Notifier.Notify(session.IdUsuario, entities.Event{
		Type: entities.EventPointsAwarded,
		Data: map[string]interface{}{
			"puntosGanados": entities.PointsPerExercise,
			"idSesion":      session.IdSesion,
			"idEjercicio":   session.IdEjercicio,
		},
	})
	return nil
}

func (uc *ExerciseUseCase) result(msg string, session *entities.ExerciseSession) *entities.ExerciseResult {
	return &entities.ExerciseResult{
		Success:       true,
		Message:       msg,
		PuntosGanados: entities.PointsPerExercise,
		IdSesion:      session.IdSesion,
	}
}

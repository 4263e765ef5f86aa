package repositories

import (
	"context"
	"time"

	"mentesana-server/db"
	"mentesana-server/entities"
)

type exerciseSqlRepository struct {
	db db.Executor
}

func NewExerciseSqlRepository(ex db.Executor) ExerciseRepository {
	return &exerciseSqlRepository{db: ex}
}

func (r *exerciseSqlRepository) GetAll(ctx context.Context) ([]entities.Exercise, error) {
	rows, err := r.db.QueryAll(ctx, "SELECT IdEjercicio, Nombre FROM Ejercicios ORDER BY IdEjercicio", nil)
	if err != nil {
		return nil, err
	}
	exercises := make([]entities.Exercise, 0, len(rows))
	for _, row := range rows {
		exercises = append(exercises, toExercise(row))
	}
	return exercises, nil
}

func (r *exerciseSqlRepository) GetByID(ctx context.Context, id int64) (*entities.Exercise, error) {
	row, err := r.db.QueryOne(ctx, "SELECT IdEjercicio, Nombre FROM Ejercicios WHERE IdEjercicio = @id", db.Params{"id": id})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	e := toExercise(row)
	return &e, nil
}

func (r *exerciseSqlRepository) CreateSession(ctx context.Context, session *entities.ExerciseSession) error {
	if session.FechaSesion.IsZero() {
		session.FechaSesion = time.Now().UTC()
	}
	res, err := r.db.Execute(ctx,
		`INSERT INTO SesionesEjercicio (IdUsuario, IdEjercicio, FechaSesion, Completado, RespuestaGratitud)
		VALUES (@user, @ejercicio, @fecha, @completado, @respuesta)
		RETURNING IdSesion`,
		db.Params{
			"user":       session.IdUsuario,
			"ejercicio":  session.IdEjercicio,
			"fecha":      session.FechaSesion,
			"completado": session.Completado,
			"respuesta":  session.RespuestaGratitud,
		})
	if err != nil {
		return err
	}
	session.IdSesion = res.InsertedID
	compensate(r.db, "DELETE FROM SesionesEjercicio WHERE IdSesion = @id", db.Params{"id": session.IdSesion})
	return nil
}

func (r *exerciseSqlRepository) CountSessions(ctx context.Context, userID int64) (int64, error) {
	row, err := r.db.QueryOne(ctx,
		"SELECT COUNT(*) AS total FROM SesionesEjercicio WHERE IdUsuario = @user",
		db.Params{"user": userID})
	if err != nil {
		return 0, err
	}
	return row.Int64("total"), nil
}

package repositories

import (
	"context"
	"time"

	"mentesana-server/db"
	"mentesana-server/entities"
)

type challengeSqlRepository struct {
	db db.Executor
}

func NewChallengeSqlRepository(ex db.Executor) ChallengeRepository {
	return &challengeSqlRepository{db: ex}
}

func (r *challengeSqlRepository) GetByUserID(ctx context.Context, userID int64) ([]entities.Challenge, error) {
	rows, err := r.db.QueryAll(ctx,
		"SELECT * FROM Retos WHERE IdUsuario = @user ORDER BY FechaCreacion DESC, IdReto DESC",
		db.Params{"user": userID})
	if err != nil {
		return nil, err
	}
	challenges := make([]entities.Challenge, 0, len(rows))
	for _, row := range rows {
		challenges = append(challenges, toChallenge(row))
	}
	return challenges, nil
}

func (r *challengeSqlRepository) Create(ctx context.Context, challenge *entities.Challenge) error {
	if challenge.Estado == "" {
		challenge.Estado = entities.ChallengePending
	}
	if challenge.FechaCreacion.IsZero() {
		challenge.FechaCreacion = time.Now().UTC()
	}
	res, err := r.db.Execute(ctx,
		`INSERT INTO Retos (IdUsuario, Titulo, Estado, FechaCreacion)
		VALUES (@user, @titulo, @estado, @fecha)
		RETURNING IdReto`,
		db.Params{
			"user":   challenge.IdUsuario,
			"titulo": challenge.Titulo,
			"estado": challenge.Estado,
			"fecha":  challenge.FechaCreacion,
		})
	if err != nil {
		return err
	}
	challenge.IdReto = res.InsertedID
	compensate(r.db, "DELETE FROM Retos WHERE IdReto = @id", db.Params{"id": challenge.IdReto})
	return nil
}

// UpdateStatus changes the state of a challenge owned by userID and returns
// the stored row.
func (r *challengeSqlRepository) UpdateStatus(ctx context.Context, id, userID int64, estado string, fulfilledAt *time.Time) (*entities.Challenge, error) {
	row, err := r.db.QueryOne(ctx,
		`UPDATE Retos SET Estado = @estado, FechaCumplido = @cumplido
		WHERE IdReto = @id AND IdUsuario = @user
		RETURNING *`,
		db.Params{"id": id, "user": userID, "estado": estado, "cumplido": fulfilledAt})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	c := toChallenge(row)
	return &c, nil
}

func (r *challengeSqlRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.Execute(ctx,
		"DELETE FROM Retos WHERE IdReto = @id AND IdUsuario = @user",
		db.Params{"id": id, "user": userID})
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *challengeSqlRepository) CountFulfilled(ctx context.Context, userID int64) (int64, error) {
	row, err := r.db.QueryOne(ctx,
		"SELECT COUNT(*) AS total FROM Retos WHERE IdUsuario = @user AND Estado = @estado",
		db.Params{"user": userID, "estado": entities.ChallengeFulfilled})
	if err != nil {
		return 0, err
	}
	return row.Int64("total"), nil
}

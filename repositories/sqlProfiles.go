package repositories

import (
	"context"

	"mentesana-server/db"
	"mentesana-server/entities"
)

type profileSqlRepository struct {
	db db.Executor
}

func NewProfileSqlRepository(ex db.Executor) ProfileRepository {
	return &profileSqlRepository{db: ex}
}

// CreateEmpty adds a blank profile for userID unless one exists.
func (r *profileSqlRepository) CreateEmpty(ctx context.Context, userID int64) error {
	res, err := r.db.Execute(ctx,
		`INSERT INTO Perfil (IdUsuario) VALUES (@user)
		ON CONFLICT (IdUsuario) DO NOTHING`,
		db.Params{"user": userID})
	if err != nil {
		return err
	}
	if res.RowsAffected > 0 {
		compensate(r.db, "DELETE FROM Perfil WHERE IdUsuario = @user", db.Params{"user": userID})
	}
	return nil
}

func (r *profileSqlRepository) Upsert(ctx context.Context, profile *entities.Profile) error {
	res, err := r.db.Execute(ctx,
		`INSERT INTO Perfil (IdUsuario, NombreCompleto, CorreoElectronico, FechaDeNacimiento, Genero, Biografia)
		VALUES (@user, @nombre, @correo, @nacimiento, @genero, @bio)
		ON CONFLICT (IdUsuario) DO UPDATE SET
			NombreCompleto = excluded.NombreCompleto,
			CorreoElectronico = excluded.CorreoElectronico,
			FechaDeNacimiento = excluded.FechaDeNacimiento,
			Genero = excluded.Genero,
			Biografia = excluded.Biografia
		RETURNING IdPerfil`,
		db.Params{
			"user":       profile.IdUsuario,
			"nombre":     profile.NombreCompleto,
			"correo":     profile.CorreoElectronico,
			"nacimiento": profile.FechaDeNacimiento,
			"genero":     profile.Genero,
			"bio":        profile.Biografia,
		})
	if err != nil {
		return err
	}
	profile.IdPerfil = res.InsertedID
	return nil
}

func (r *profileSqlRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Profile, error) {
	row, err := r.db.QueryOne(ctx, "SELECT * FROM Perfil WHERE IdUsuario = @user", db.Params{"user": userID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return toProfile(row), nil
}

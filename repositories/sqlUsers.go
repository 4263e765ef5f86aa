package repositories

import (
	"context"
	"time"

	"mentesana-server/db"
	"mentesana-server/entities"
)

type userSqlRepository struct {
	db db.Executor
}

func NewUserSqlRepository(ex db.Executor) UserRepository {
	return &userSqlRepository{db: ex}
}

func (r *userSqlRepository) Create(ctx context.Context, user *entities.User) error {
	if user.FechaRegistro.IsZero() {
		user.FechaRegistro = time.Now().UTC()
	}
	if user.Nivel == 0 {
		user.Nivel = 1
	}
	res, err := r.db.Execute(ctx,
		`INSERT INTO Usuarios (Nombre, Correo, Contrasena, Nivel, Puntos, FechaRegistro)
		VALUES (@nombre, @correo, @hash, @nivel, @puntos, @fecha)
		RETURNING IdUsuario`,
		db.Params{
			"nombre": user.Nombre,
			"correo": user.Correo,
			"hash":   user.Contrasena,
			"nivel":  user.Nivel,
			"puntos": user.Puntos,
			"fecha":  user.FechaRegistro,
		})
	if err != nil {
		return err
	}
	user.IdUsuario = res.InsertedID
	compensate(r.db, "DELETE FROM Usuarios WHERE IdUsuario = @id", db.Params{"id": user.IdUsuario})
	return nil
}

func (r *userSqlRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	row, err := r.db.QueryOne(ctx, "SELECT * FROM Usuarios WHERE IdUsuario = @id", db.Params{"id": id})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return toUser(row), nil
}

func (r *userSqlRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	row, err := r.db.QueryOne(ctx, "SELECT * FROM Usuarios WHERE Correo = @correo", db.Params{"correo": email})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return toUser(row), nil
}

func (r *userSqlRepository) AddPoints(ctx context.Context, id int64, points int) error {
	res, err := r.db.Execute(ctx,
		"UPDATE Usuarios SET Puntos = COALESCE(Puntos, 0) + @puntos WHERE IdUsuario = @id",
		db.Params{"id": id, "puntos": points})
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	compensate(r.db, "UPDATE Usuarios SET Puntos = Puntos - @puntos WHERE IdUsuario = @id",
		db.Params{"id": id, "puntos": points})
	return nil
}

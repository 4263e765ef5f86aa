package repositories

import (
	"context"
	"time"

	"mentesana-server/db"
	"mentesana-server/entities"
)

type petSqlRepository struct {
	db db.Executor
}

func NewPetSqlRepository(ex db.Executor) PetRepository {
	return &petSqlRepository{db: ex}
}

func (r *petSqlRepository) ListSpecies(ctx context.Context) ([]entities.PetSpecies, error) {
	rows, err := r.db.QueryAll(ctx, "SELECT IdMascota, Nombre, Tipo, Imagen FROM Mascotas ORDER BY IdMascota", nil)
	if err != nil {
		return nil, err
	}
	species := make([]entities.PetSpecies, 0, len(rows))
	for _, row := range rows {
		species = append(species, toSpecies(row))
	}
	return species, nil
}

func (r *petSqlRepository) GetSpecies(ctx context.Context, tipo string) (*entities.PetSpecies, error) {
	row, err := r.db.QueryOne(ctx,
		"SELECT IdMascota, Nombre, Tipo, Imagen FROM Mascotas WHERE Tipo = @tipo",
		db.Params{"tipo": tipo})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	s := toSpecies(row)
	return &s, nil
}

func (r *petSqlRepository) GetActive(ctx context.Context, userID int64) (*entities.UserPet, error) {
	return r.one(ctx,
		"SELECT * FROM UsuarioMascota WHERE IdUsuario = @user AND Activa = @on",
		db.Params{"user": userID, "on": true})
}

func (r *petSqlRepository) GetByID(ctx context.Context, id int64) (*entities.UserPet, error) {
	return r.one(ctx, "SELECT * FROM UsuarioMascota WHERE IdUsuarioMascota = @id", db.Params{"id": id})
}

// LatestByType returns the user's most recent adoption of the species.
func (r *petSqlRepository) LatestByType(ctx context.Context, userID int64, tipo string) (*entities.UserPet, error) {
	return r.one(ctx,
		`SELECT * FROM UsuarioMascota
		WHERE IdUsuario = @user AND Tipo = @tipo
		ORDER BY FechaAdopcion DESC, IdUsuarioMascota DESC
		LIMIT 1`,
		db.Params{"user": userID, "tipo": tipo})
}

// DeactivateAll clears the active flag on every pet of the user and returns
// the ids that were active.
func (r *petSqlRepository) DeactivateAll(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryAll(ctx,
		"SELECT IdUsuarioMascota FROM UsuarioMascota WHERE IdUsuario = @user AND Activa = @on",
		db.Params{"user": userID, "on": true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if _, err := r.db.Execute(ctx,
		"UPDATE UsuarioMascota SET Activa = @off WHERE IdUsuario = @user AND Activa = @on",
		db.Params{"user": userID, "on": true, "off": false}); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		id := row.Int64("IdUsuarioMascota")
		ids = append(ids, id)
		compensate(r.db, "UPDATE UsuarioMascota SET Activa = @on WHERE IdUsuarioMascota = @id",
			db.Params{"id": id, "on": true})
	}
	return ids, nil
}

func (r *petSqlRepository) Activate(ctx context.Context, id int64) error {
	res, err := r.db.Execute(ctx,
		"UPDATE UsuarioMascota SET Activa = @on WHERE IdUsuarioMascota = @id",
		db.Params{"id": id, "on": true})
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	compensate(r.db, "UPDATE UsuarioMascota SET Activa = @off WHERE IdUsuarioMascota = @id",
		db.Params{"id": id, "off": false})
	return nil
}

// Create inserts an adoption and refreshes pet from the stored row.
func (r *petSqlRepository) Create(ctx context.Context, pet *entities.UserPet) error {
	if pet.FechaAdopcion.IsZero() {
		pet.FechaAdopcion = time.Now().UTC()
	}
	row, err := r.db.QueryOne(ctx,
		`INSERT INTO UsuarioMascota (IdUsuario, IdMascota, Tipo, FechaAdopcion, Activa,
			Nivel, Experiencia, ExperienciaNecesaria, Felicidad, Energia, Hambre, Monedas, Estado)
		VALUES (@user, @mascota, @tipo, @fecha, @activa,
			@nivel, @experiencia, @necesaria, @felicidad, @energia, @hambre, @monedas, @estado)
		RETURNING *`,
		db.Params{
			"user":        pet.IdUsuario,
			"mascota":     pet.IdMascota,
			"tipo":        pet.Tipo,
			"fecha":       pet.FechaAdopcion,
			"activa":      pet.Activa,
			"nivel":       pet.Nivel,
			"experiencia": pet.Experiencia,
			"necesaria":   pet.ExperienciaNecesaria,
			"felicidad":   pet.Felicidad,
			"energia":     pet.Energia,
			"hambre":      pet.Hambre,
			"monedas":     pet.Monedas,
			"estado":      pet.Estado,
		})
	if err != nil {
		return err
	}
	if row != nil {
		*pet = *toUserPet(row)
	}
	compensate(r.db, "DELETE FROM UsuarioMascota WHERE IdUsuarioMascota = @id", db.Params{"id": pet.IdUsuarioMascota})
	return nil
}

// UpdateStats overwrites all gameplay fields of a pet.
func (r *petSqlRepository) UpdateStats(ctx context.Context, id int64, stats entities.PetStats) error {
	res, err := r.db.Execute(ctx,
		`UPDATE UsuarioMascota SET
			Nivel = @nivel,
			Experiencia = @experiencia,
			ExperienciaNecesaria = @necesaria,
			Felicidad = @felicidad,
			Energia = @energia,
			Hambre = @hambre,
			Monedas = @monedas,
			Estado = @estado
		WHERE IdUsuarioMascota = @id`,
		db.Params{
			"id":          id,
			"nivel":       stats.Nivel,
			"experiencia": stats.Experiencia,
			"necesaria":   stats.ExperienciaNecesaria,
			"felicidad":   stats.Felicidad,
			"energia":     stats.Energia,
			"hambre":      stats.Hambre,
			"monedas":     stats.Monedas,
			"estado":      stats.Estado,
		})
	if err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *petSqlRepository) one(ctx context.Context, query string, params db.Params) (*entities.UserPet, error) {
	row, err := r.db.QueryOne(ctx, query, params)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return toUserPet(row), nil
}

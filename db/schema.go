package db

import (
	"context"
	"fmt"
	"strings"

	"mentesana-server/logger"
)

// Column types that differ between engines. Everything else in the DDL below
// is accepted by both.
var ddlTypes = map[Engine]*strings.Replacer{
	EnginePostgres: strings.NewReplacer(
		"{{PK}}", "BIGSERIAL PRIMARY KEY",
		"{{ID}}", "BIGINT",
		"{{TS}}", "TIMESTAMPTZ",
	),
	EngineSQLite: strings.NewReplacer(
		"{{PK}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{ID}}", "INTEGER",
		"{{TS}}", "DATETIME",
	),
}

var tables = []struct {
	name string
	ddl  string
}{
	{"Usuarios", `CREATE TABLE IF NOT EXISTS Usuarios (
	IdUsuario {{PK}},
	Nombre TEXT NOT NULL,
	Correo TEXT NOT NULL,
	Contrasena TEXT NOT NULL,
	Nivel INTEGER NOT NULL DEFAULT 1 CHECK (Nivel >= 1),
	Puntos INTEGER NOT NULL DEFAULT 0 CHECK (Puntos >= 0),
	FechaRegistro {{TS}} NOT NULL DEFAULT CURRENT_TIMESTAMP
)`},
	{"Perfil", `CREATE TABLE IF NOT EXISTS Perfil (
	IdPerfil {{PK}},
	IdUsuario {{ID}} NOT NULL REFERENCES Usuarios(IdUsuario) ON DELETE CASCADE,
	NombreCompleto TEXT,
	CorreoElectronico TEXT,
	FechaDeNacimiento TEXT,
	Genero TEXT,
	Biografia TEXT
)`},
	{"Emociones", `CREATE TABLE IF NOT EXISTS Emociones (
	IdEmocion INTEGER PRIMARY KEY,
	Nombre TEXT NOT NULL,
	Color TEXT NOT NULL,
	Icono TEXT NOT NULL
)`},
	{"RegistroEmocional", `CREATE TABLE IF NOT EXISTS RegistroEmocional (
	IdRegistro {{PK}},
	IdUsuario {{ID}} NOT NULL REFERENCES Usuarios(IdUsuario) ON DELETE CASCADE,
	IdEmocion INTEGER NOT NULL REFERENCES Emociones(IdEmocion),
	Nota TEXT,
	FechaRegistro {{TS}} NOT NULL DEFAULT CURRENT_TIMESTAMP
)`},
	{"Ejercicios", `CREATE TABLE IF NOT EXISTS Ejercicios (
	IdEjercicio INTEGER PRIMARY KEY,
	Nombre TEXT NOT NULL
)`},
	{"SesionesEjercicio", `CREATE TABLE IF NOT EXISTS SesionesEjercicio (
	IdSesion {{PK}},
	IdUsuario {{ID}} NOT NULL REFERENCES Usuarios(IdUsuario) ON DELETE CASCADE,
	IdEjercicio INTEGER NOT NULL REFERENCES Ejercicios(IdEjercicio),
	FechaSesion {{TS}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
	Completado BOOLEAN NOT NULL DEFAULT FALSE,
	RespuestaGratitud TEXT
)`},
	{"Retos", `CREATE TABLE IF NOT EXISTS Retos (
	IdReto {{PK}},
	IdUsuario {{ID}} NOT NULL REFERENCES Usuarios(IdUsuario) ON DELETE CASCADE,
	Titulo TEXT NOT NULL,
	Estado TEXT NOT NULL DEFAULT 'Pending',
	FechaCreacion {{TS}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FechaCumplido {{TS}}
)`},
	{"Mascotas", `CREATE TABLE IF NOT EXISTS Mascotas (
	IdMascota {{PK}},
	Nombre TEXT NOT NULL,
	Tipo TEXT NOT NULL,
	Imagen TEXT
)`},
	{"UsuarioMascota", `CREATE TABLE IF NOT EXISTS UsuarioMascota (
	IdUsuarioMascota {{PK}},
	IdUsuario {{ID}} NOT NULL REFERENCES Usuarios(IdUsuario) ON DELETE CASCADE,
	IdMascota {{ID}} NOT NULL REFERENCES Mascotas(IdMascota),
	Tipo TEXT NOT NULL,
	FechaAdopcion {{TS}} NOT NULL DEFAULT CURRENT_TIMESTAMP,
	Activa BOOLEAN NOT NULL DEFAULT FALSE,
	Nivel INTEGER NOT NULL DEFAULT 1,
	Experiencia INTEGER NOT NULL DEFAULT 0,
	ExperienciaNecesaria INTEGER NOT NULL DEFAULT 100,
	Felicidad INTEGER NOT NULL DEFAULT 100,
	Energia INTEGER NOT NULL DEFAULT 100,
	Hambre INTEGER NOT NULL DEFAULT 0,
	Monedas INTEGER NOT NULL DEFAULT 50,
	Estado TEXT NOT NULL DEFAULT 'Happy'
)`},
}

var indexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_usuarios_correo ON Usuarios (Correo)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_perfil_usuario ON Perfil (IdUsuario)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_emociones_nombre ON Emociones (Nombre)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_ejercicios_nombre ON Ejercicios (Nombre)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_mascotas_tipo ON Mascotas (Tipo)`,
	// At most one active pet per user, enforced by the engine.
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_usuariomascota_activa ON UsuarioMascota (IdUsuario) WHERE Activa`,
	`CREATE INDEX IF NOT EXISTS ix_usuariomascota_tipo ON UsuarioMascota (IdUsuario, Tipo, FechaAdopcion)`,
	`CREATE INDEX IF NOT EXISTS ix_registroemocional_usuario ON RegistroEmocional (IdUsuario, FechaRegistro)`,
	`CREATE INDEX IF NOT EXISTS ix_sesiones_usuario ON SesionesEjercicio (IdUsuario)`,
	`CREATE INDEX IF NOT EXISTS ix_retos_usuario ON Retos (IdUsuario, FechaCreacion)`,
}

// SeedEmotion is a row of the fixed emotion catalog.
type SeedEmotion struct {
	ID    int
	Name  string
	Color string
	Icon  string
}

// SeedSpecies is a row of the fixed pet species catalog.
type SeedSpecies struct {
	Name  string
	Key   string
	Image string
}

var SeedEmotions = []SeedEmotion{
	{1, "Feliz", "#FFD700", "😊"},
	{2, "Triste", "#3498DB", "😢"},
	{3, "Enojado", "#E74C3C", "😠"},
	{4, "Ansioso", "#9B59B6", "😰"},
	{5, "Relajado", "#2ECC71", "😌"},
	{6, "Cansado", "#95A5A6", "😴"},
	{7, "Energico", "#FF9800", "😄"},
	{8, "Confundido", "#795548", "😕"},
	{9, "Agradecido", "#009688", "🙏"},
	{10, "Calmado", "#8E24AA", "😌"},
}

// SeedExercises maps exercise id to name.
var SeedExercises = []struct {
	ID   int
	Name string
}{
	{1, "Respiración"},
	{2, "Meditación"},
	{3, "Ejercicio Físico"},
	{GratitudeExerciseID, "Gratitud"},
}

var SeedSpeciesList = []SeedSpecies{
	{"Axolote", "axolote", "imagvideos/axolo.png"},
	{"Caracol", "caracol", "imagvideos/caracoli.png"},
	{"Dinosaurio", "dinosaurio", "imagvideos/dinosau.png"},
}

// GratitudeExerciseID is the catalog id gratitude submissions are logged under.
const GratitudeExerciseID = 4

// InitSchema creates every table and index that is missing and seeds the
// lookup tables when they are empty. It can run any number of times.
func InitSchema(ctx context.Context, database Database) error {
	engine := database.Engine()
	types, ok := ddlTypes[engine]
	if !ok {
		return fmt.Errorf("no DDL for engine %s", engine)
	}

	for _, t := range tables {
		if _, err := database.Execute(ctx, types.Replace(t.ddl), nil); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		logger.Debug("table ready", "table", t.name)
	}
	for _, ix := range indexes {
		if _, err := database.Execute(ctx, ix, nil); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	seeds := []struct {
		table string
		run   func(context.Context, Tx) error
	}{
		{"Emociones", seedEmotions},
		{"Ejercicios", seedExercises},
		{"Mascotas", seedSpecies},
	}
	for _, s := range seeds {
		err := database.Atomic(ctx, func(tx Tx) error {
			row, err := tx.QueryOne(ctx, "SELECT COUNT(*) AS total FROM "+s.table, nil)
			if err != nil {
				return err
			}
			if row.Int64("total") > 0 {
				return nil
			}
			logger.Info("seeding lookup table", "table", s.table)
			return s.run(ctx, tx)
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.table, err)
		}
	}
	return nil
}

func seedEmotions(ctx context.Context, tx Tx) error {
	for _, e := range SeedEmotions {
		res, err := tx.Execute(ctx,
			`INSERT INTO Emociones (IdEmocion, Nombre, Color, Icono)
			VALUES (@id, @nombre, @color, @icono)
			ON CONFLICT DO NOTHING`,
			Params{"id": e.ID, "nombre": e.Name, "color": e.Color, "icono": e.Icon})
		if err != nil {
			return err
		}
		if res.RowsAffected > 0 {
			tx.Compensate("DELETE FROM Emociones WHERE IdEmocion = @id", Params{"id": e.ID})
		}
	}
	return nil
}

func seedExercises(ctx context.Context, tx Tx) error {
	for _, e := range SeedExercises {
		res, err := tx.Execute(ctx,
			`INSERT INTO Ejercicios (IdEjercicio, Nombre)
			VALUES (@id, @nombre)
			ON CONFLICT DO NOTHING`,
			Params{"id": e.ID, "nombre": e.Name})
		if err != nil {
			return err
		}
		if res.RowsAffected > 0 {
			tx.Compensate("DELETE FROM Ejercicios WHERE IdEjercicio = @id", Params{"id": e.ID})
		}
	}
	return nil
}

func seedSpecies(ctx context.Context, tx Tx) error {
	for _, s := range SeedSpeciesList {
		res, err := tx.Execute(ctx,
			`INSERT INTO Mascotas (Nombre, Tipo, Imagen)
			VALUES (@nombre, @tipo, @imagen)
			ON CONFLICT DO NOTHING`,
			Params{"nombre": s.Name, "tipo": s.Key, "imagen": s.Image})
		if err != nil {
			return err
		}
		if res.RowsAffected > 0 {
			tx.Compensate("DELETE FROM Mascotas WHERE Tipo = @tipo", Params{"tipo": s.Key})
		}
	}
	return nil
}

package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txModes = []struct {
	name   string
	native bool
}{
	{"native", true},
	{"compensating", false},
}

func openTestDB(t *testing.T, native bool) *GormDatabase {
	t.Helper()
	database, err := OpenEmbedded(filepath.Join(t.TempDir(), "mentesana.db"), Options{LogLevel: "silent", NativeTx: native})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, InitSchema(context.Background(), database))
	return database
}

func countRows(t *testing.T, database Executor, table string) int64 {
	t.Helper()
	row, err := database.QueryOne(context.Background(), "SELECT COUNT(*) AS total FROM "+table, nil)
	require.NoError(t, err)
	return row.Int64("total")
}

func insertUser(t *testing.T, database Executor, email string) int64 {
	t.Helper()
	res, err := database.Execute(context.Background(),
		`INSERT INTO Usuarios (Nombre, Correo, Contrasena, Nivel, Puntos, FechaRegistro)
		VALUES (@nombre, @correo, 'x', 1, 0, @fecha)
		RETURNING IdUsuario`,
		Params{"nombre": "Ana", "correo": email, "fecha": time.Now()})
	require.NoError(t, err)
	return res.InsertedID
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	for _, mode := range txModes {
		t.Run(mode.name, func(t *testing.T) {
			database := openTestDB(t, mode.native)
			ctx := context.Background()
			for i := 0; i < 3; i++ {
				require.NoError(t, InitSchema(ctx, database))
			}
			assert.Equal(t, int64(10), countRows(t, database, "Emociones"))
			assert.Equal(t, int64(4), countRows(t, database, "Ejercicios"))
			assert.Equal(t, int64(3), countRows(t, database, "Mascotas"))

			row, err := database.QueryOne(ctx, "SELECT Nombre FROM Ejercicios WHERE IdEjercicio = @id", Params{"id": GratitudeExerciseID})
			require.NoError(t, err)
			assert.Equal(t, "Gratitud", row.String("Nombre"))
		})
	}
}

func TestExecuteReportsInsertedID(t *testing.T) {
	database := openTestDB(t, true)
	ctx := context.Background()

	first := insertUser(t, database, "ana@x.com")
	assert.Equal(t, int64(1), first)

	res, err := database.Execute(ctx,
		`INSERT INTO Usuarios (Nombre, Correo, Contrasena) VALUES (@nombre, @correo, 'x')`,
		Params{"nombre": "Luis", "correo": "luis@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.InsertedID)
	assert.Equal(t, int64(1), res.RowsAffected)
}

func TestUniqueViolationIsConflict(t *testing.T) {
	database := openTestDB(t, true)
	insertUser(t, database, "ana@x.com")

	_, err := database.Execute(context.Background(),
		`INSERT INTO Usuarios (Nombre, Correo, Contrasena) VALUES ('Otra', @correo, 'x')`,
		Params{"correo": "ana@x.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrEngine)
}

func TestEngineErrorsAreWrapped(t *testing.T) {
	database := openTestDB(t, true)
	_, err := database.QueryAll(context.Background(), "SELECT * FROM TablaInexistente", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEngine)
}

func TestBindingErrorsStopBeforeTheEngine(t *testing.T) {
	database := openTestDB(t, true)
	_, err := database.Execute(context.Background(), "DELETE FROM Retos WHERE IdReto = @id", Params{})
	assert.ErrorIs(t, err, ErrMissingParam)
	assert.NotErrorIs(t, err, ErrEngine)
}

func TestRowsAreNormalized(t *testing.T) {
	database := openTestDB(t, true)
	ctx := context.Background()
	userID := insertUser(t, database, "ana@x.com")
	created := time.Date(2024, 6, 1, 22, 30, 0, 0, time.UTC)

	res, err := database.Execute(ctx,
		`INSERT INTO Retos (IdUsuario, Titulo, Estado, FechaCreacion)
		VALUES (@user, @titulo, 'Pending', @creado)
		RETURNING IdReto`,
		Params{"user": userID, "titulo": "Meditar", "creado": created})
	require.NoError(t, err)

	row, err := database.QueryOne(ctx, "SELECT * FROM Retos WHERE IdReto = @id", Params{"id": res.InsertedID})
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, res.InsertedID, row.Int64("IdReto"))
	assert.IsType(t, int64(0), row.Value("IdUsuario"))
	assert.IsType(t, time.Time{}, row.Value("FechaCreacion"))
	assert.True(t, created.Equal(row.Time("FechaCreacion")))
	assert.Nil(t, row.NullTime("FechaCumplido"))

	missing, err := database.QueryOne(ctx, "SELECT * FROM Retos WHERE IdReto = @id", Params{"id": 999})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBooleansRoundTrip(t *testing.T) {
	database := openTestDB(t, true)
	ctx := context.Background()
	userID := insertUser(t, database, "ana@x.com")

	_, err := database.Execute(ctx,
		`INSERT INTO SesionesEjercicio (IdUsuario, IdEjercicio, FechaSesion, Completado)
		VALUES (@user, 1, @at, @done)`,
		Params{"user": userID, "at": time.Now(), "done": true})
	require.NoError(t, err)

	rows, err := database.QueryAll(ctx, "SELECT Completado FROM SesionesEjercicio WHERE Completado = @done", Params{"done": true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, true, rows[0].Value("Completado"))
}

func TestAtomicRollsBackOnFailure(t *testing.T) {
	for _, mode := range txModes {
		t.Run(mode.name, func(t *testing.T) {
			database := openTestDB(t, mode.native)
			ctx := context.Background()
			userID := insertUser(t, database, "ana@x.com")
			_, err := database.Execute(ctx,
				`INSERT INTO UsuarioMascota (IdUsuario, IdMascota, Tipo, Activa) VALUES (@user, 1, 'axolote', @on)`,
				Params{"user": userID, "on": true})
			require.NoError(t, err)

			boom := errors.New("species lookup failed")
			err = database.Atomic(ctx, func(tx Tx) error {
				res, err := tx.Execute(ctx,
					"UPDATE UsuarioMascota SET Activa = @off WHERE IdUsuario = @user AND Activa = @on",
					Params{"user": userID, "on": true, "off": false})
				if err != nil {
					return err
				}
				require.Equal(t, int64(1), res.RowsAffected)
				tx.Compensate("UPDATE UsuarioMascota SET Activa = @on WHERE IdUsuario = @user",
					Params{"user": userID, "on": true})
				return boom
			})
			assert.ErrorIs(t, err, boom)

			row, err := database.QueryOne(ctx,
				"SELECT COUNT(*) AS total FROM UsuarioMascota WHERE IdUsuario = @user AND Activa = @on",
				Params{"user": userID, "on": true})
			require.NoError(t, err)
			assert.Equal(t, int64(1), row.Int64("total"))
		})
	}
}

func TestAtomicCommitsOnSuccess(t *testing.T) {
	for _, mode := range txModes {
		t.Run(mode.name, func(t *testing.T) {
			database := openTestDB(t, mode.native)
			ctx := context.Background()
			userID := insertUser(t, database, "ana@x.com")

			err := database.Atomic(ctx, func(tx Tx) error {
				_, err := tx.Execute(ctx, "UPDATE Usuarios SET Puntos = Puntos + 10 WHERE IdUsuario = @id", Params{"id": userID})
				return err
			})
			require.NoError(t, err)

			row, err := database.QueryOne(ctx, "SELECT Puntos FROM Usuarios WHERE IdUsuario = @id", Params{"id": userID})
			require.NoError(t, err)
			assert.Equal(t, 10, row.Int("Puntos"))
		})
	}
}

func TestCompensationsReplayNewestFirst(t *testing.T) {
	database := openTestDB(t, false)
	ctx := context.Background()
	userID := insertUser(t, database, "ana@x.com")

	err := database.Atomic(ctx, func(tx Tx) error {
		tx.Compensate("UPDATE Usuarios SET Puntos = 5 WHERE IdUsuario = @id", Params{"id": userID})
		tx.Compensate("UPDATE Usuarios SET Puntos = 7 WHERE IdUsuario = @id", Params{"id": userID})
		return errors.New("fail")
	})
	require.Error(t, err)

	row, err := database.QueryOne(ctx, "SELECT Puntos FROM Usuarios WHERE IdUsuario = @id", Params{"id": userID})
	require.NoError(t, err)
	assert.Equal(t, 5, row.Int("Puntos"))
}

func TestAtMostOneActivePetIsEnforced(t *testing.T) {
	database := openTestDB(t, true)
	ctx := context.Background()
	userID := insertUser(t, database, "ana@x.com")

	insert := `INSERT INTO UsuarioMascota (IdUsuario, IdMascota, Tipo, Activa) VALUES (@user, @species, @tipo, @on)`
	_, err := database.Execute(ctx, insert, Params{"user": userID, "species": 1, "tipo": "axolote", "on": true})
	require.NoError(t, err)
	_, err = database.Execute(ctx, insert, Params{"user": userID, "species": 2, "tipo": "caracol", "on": true})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPingAndEngine(t *testing.T) {
	database := openTestDB(t, true)
	assert.NoError(t, database.Ping(context.Background()))
	assert.Equal(t, EngineSQLite, database.Engine())
	assert.True(t, database.Engine().Embedded())
	assert.NotNil(t, database.GetDB())
}

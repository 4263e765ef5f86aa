package repositories

import (
	"context"
	"time"

	"mentesana-server/db"
	"mentesana-server/entities"
)

type emotionSqlRepository struct {
	db db.Executor
}

func NewEmotionSqlRepository(ex db.Executor) EmotionRepository {
	return &emotionSqlRepository{db: ex}
}

func (r *emotionSqlRepository) GetAll(ctx context.Context) ([]entities.Emotion, error) {
	rows, err := r.db.QueryAll(ctx, "SELECT IdEmocion, Nombre, Color, Icono FROM Emociones ORDER BY IdEmocion", nil)
	if err != nil {
		return nil, err
	}
	emotions := make([]entities.Emotion, 0, len(rows))
	for _, row := range rows {
		emotions = append(emotions, toEmotion(row))
	}
	return emotions, nil
}

// GetByName matches the catalog name case-insensitively.
func (r *emotionSqlRepository) GetByName(ctx context.Context, name string) (*entities.Emotion, error) {
	row, err := r.db.QueryOne(ctx,
		"SELECT IdEmocion, Nombre, Color, Icono FROM Emociones WHERE LOWER(Nombre) = LOWER(@nombre)",
		db.Params{"nombre": name})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	e := toEmotion(row)
	return &e, nil
}

func (r *emotionSqlRepository) Log(ctx context.Context, entry *entities.EmotionLogEntry) error {
	if entry.FechaRegistro.IsZero() {
		entry.FechaRegistro = time.Now().UTC()
	}
	res, err := r.db.Execute(ctx,
		`INSERT INTO RegistroEmocional (IdUsuario, IdEmocion, Nota, FechaRegistro)
		VALUES (@user, @emocion, @nota, @fecha)
		RETURNING IdRegistro`,
		db.Params{
			"user":    entry.IdUsuario,
			"emocion": entry.IdEmocion,
			"nota":    entry.Nota,
			"fecha":   entry.FechaRegistro,
		})
	if err != nil {
		return err
	}
	entry.IdRegistro = res.InsertedID
	compensate(r.db, "DELETE FROM RegistroEmocional WHERE IdRegistro = @id", db.Params{"id": entry.IdRegistro})
	return nil
}

// History returns the user's log joined with the catalog, newest first.
// Fecha and Hora are left for the caller to derive in its time zone.
func (r *emotionSqlRepository) History(ctx context.Context, userID int64) ([]entities.EmotionHistoryEntry, error) {
	rows, err := r.db.QueryAll(ctx,
		`SELECT e.Nombre, e.Color, e.Icono, r.Nota, r.FechaRegistro
		FROM RegistroEmocional r
		JOIN Emociones e ON e.IdEmocion = r.IdEmocion
		WHERE r.IdUsuario = @user
		ORDER BY r.FechaRegistro DESC, r.IdRegistro DESC`,
		db.Params{"user": userID})
	if err != nil {
		return nil, err
	}
	entries := make([]entities.EmotionHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, entities.EmotionHistoryEntry{
			Nombre:        row.String("Nombre"),
			Color:         row.String("Color"),
			Icono:         row.String("Icono"),
			Nota:          row.String("Nota"),
			FechaRegistro: row.Time("FechaRegistro"),
		})
	}
	return entries, nil
}

func (r *emotionSqlRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	row, err := r.db.QueryOne(ctx,
		"SELECT COUNT(*) AS total FROM RegistroEmocional WHERE IdUsuario = @user",
		db.Params{"user": userID})
	if err != nil {
		return 0, err
	}
	return row.Int64("total"), nil
}

// LoggedSince returns the timestamps of every entry at or after since.
func (r *emotionSqlRepository) LoggedSince(ctx context.Context, userID int64, since time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryAll(ctx,
		`SELECT FechaRegistro FROM RegistroEmocional
		WHERE IdUsuario = @user AND FechaRegistro >= @since
		ORDER BY FechaRegistro`,
		db.Params{"user": userID, "since": since})
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Time("FechaRegistro"))
	}
	return out, nil
}

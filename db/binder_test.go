package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindValidatesParams(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		params  Params
		wantErr error
	}{
		{
			name:   "all present",
			query:  "SELECT * FROM Usuarios WHERE Correo = @correo AND IdUsuario = @id",
			params: Params{"correo": "a@b.c", "id": 1},
		},
		{
			name:    "missing",
			query:   "SELECT * FROM Usuarios WHERE Correo = @correo",
			params:  Params{},
			wantErr: ErrMissingParam,
		},
		{
			name:    "unused",
			query:   "SELECT 1",
			params:  Params{"extra": 1},
			wantErr: ErrUnusedParam,
		},
		{
			name:    "unsupported type",
			query:   "SELECT @v",
			params:  Params{"v": []string{"x"}},
			wantErr: ErrUnsupportedParam,
		},
		{
			name:    "positional marker",
			query:   "SELECT * FROM Usuarios WHERE IdUsuario = ?",
			params:  Params{},
			wantErr: ErrPlaceholder,
		},
		{
			name:    "cast right after name",
			query:   "SELECT @d::date",
			params:  Params{"d": "2024-01-01"},
			wantErr: ErrPlaceholder,
		},
		{
			name:   "at sign inside literal",
			query:  "SELECT * FROM Usuarios WHERE Correo <> 'root@localhost' AND IdUsuario = @id",
			params: Params{"id": 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind(EnginePostgres, tt.query, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBindCollectsNamesOnce(t *testing.T) {
	b, err := Bind(EnginePostgres, "UPDATE t SET a = @v WHERE b = @v OR c = @w", Params{"v": 1, "w": 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"v", "w"}, b.Names)
	assert.Equal(t, []any{map[string]any{"v": int64(1), "w": int64(2)}}, b.Vars())
}

func TestBindRewritesTabs(t *testing.T) {
	b, err := Bind(EngineSQLite, "SELECT *\tFROM t WHERE a = @a\tAND b = 'x\ty'", Params{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = @a AND b = 'x\ty'", b.SQL)
}

func TestBindConvertsForEngine(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 30, 0, 0, time.FixedZone("CET", 3600))
	params := Params{"ok": true, "at": at, "n": int32(7), "note": (*string)(nil)}
	query := "SELECT @ok, @at, @n, @note"

	embedded, err := Bind(EngineSQLite, query, params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), embedded.Args["ok"])
	assert.Equal(t, "2024-03-05 13:30:00", embedded.Args["at"])
	assert.Equal(t, int64(7), embedded.Args["n"])
	assert.Nil(t, embedded.Args["note"])

	networked, err := Bind(EnginePostgres, query, params)
	require.NoError(t, err)
	assert.Equal(t, true, networked.Args["ok"])
	assert.Equal(t, at.UTC(), networked.Args["at"])

	assert.Equal(t, map[string]Kind{"ok": KindBool, "at": KindTime, "n": KindInt, "note": KindNull}, networked.Kinds)
}

func TestBindWithoutParams(t *testing.T) {
	b, err := Bind(EngineSQLite, "SELECT COUNT(*) AS total FROM Emociones", nil)
	require.NoError(t, err)
	assert.Nil(t, b.Vars())
}

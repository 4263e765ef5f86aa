package confs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEngineDetection(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "local default", env: map[string]string{}, want: EnginePostgres},
		{name: "use sqlite flag", env: map[string]string{"USE_SQLITE": "true"}, want: EngineSQLite},
		{name: "railway", env: map[string]string{"RAILWAY": "true", "JWT_SECRET": "s"}, want: EngineSQLite},
		{name: "production", env: map[string]string{"APP_ENV": "production", "JWT_SECRET": "s"}, want: EngineSQLite},
		{name: "explicit wins", env: map[string]string{"RENDER": "true", "DB_ENGINE": "postgresql", "JWT_SECRET": "s"}, want: EnginePostgres},
		{name: "embedded alias", env: map[string]string{"DB_ENGINE": "embedded"}, want: EngineSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Parse()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.DBEngine)
		})
	}
}

func TestParseRejectsUnknownEngine(t *testing.T) {
	t.Setenv("DB_ENGINE", "oracle")
	_, err := Parse()
	assert.ErrorContains(t, err, "unsupported DB_ENGINE")
}

func TestParseRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Parse()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBURL: "postgres://u@db.example.com/app"}
	dsn, err := cfg.PostgresDSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u@db.example.com/app?sslmode=require", dsn)

	cfg = &Config{DBHost: "localhost", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "salud"}
	dsn, err = cfg.PostgresDSN()
	require.NoError(t, err)
	assert.Contains(t, dsn, "sslmode=disable")

	_, err = (&Config{DBHost: "db"}).PostgresDSN()
	assert.Error(t, err)
}

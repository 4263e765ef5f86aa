package confs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"

	devJWTSecret = "salud_mental_secreto_2024"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port   string `env:"PORT" envDefault:"3000"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// DBEngine picks the persistence adapter; empty means "detect".
	DBEngine   string `env:"DB_ENGINE"`
	Railway    bool   `env:"RAILWAY"`
	Render     bool   `env:"RENDER"`
	UseSQLite  bool   `env:"USE_SQLITE"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"database.db"`
	EmbeddedTx bool   `env:"DB_EMBEDDED_NATIVE_TX" envDefault:"true"`

	DBURL       string        `env:"DB_URL"`
	DBHost      string        `env:"DB_HOST"`
	DBPort      string        `env:"DB_PORT" envDefault:"5432"`
	DBUser      string        `env:"DB_USER"`
	DBPassword  string        `env:"DB_PASSWORD"`
	DBName      string        `env:"DB_NAME"`
	DBLogLevel  string        `env:"DB_LOG_LEVEL" envDefault:"warn"`
	DBSlowQuery time.Duration `env:"DB_SLOW_QUERY" envDefault:"500ms"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	Timezone  string        `env:"APP_TIMEZONE" envDefault:"UTC"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
	LogJSON  bool   `env:"LOG_JSON"`

	StaticDir       string        `env:"STATIC_DIR" envDefault:"fronted"`
	MediaDir        string        `env:"MEDIA_DIR" envDefault:"imagvideos"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
	AuthRatePerSec  float64       `env:"AUTH_RATE_PER_SEC" envDefault:"5"`
	AuthRateBurst   int           `env:"AUTH_RATE_BURST" envDefault:"10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig loads environment variables from a .env file if present
// and parses them into a Config.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return Parse()
}

// Parse reads the configuration from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction mirrors the deployment detection of the hosted setup.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production") || c.Railway || c.Render
}

// Location returns the time zone used to derive local dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) normalize() error {
	c.DBEngine = strings.ToLower(strings.TrimSpace(c.DBEngine))
	switch c.DBEngine {
	case "":
		if c.IsProduction() || c.UseSQLite {
			c.DBEngine = EngineSQLite
		} else {
			c.DBEngine = EnginePostgres
		}
	case "sqlite3", "embedded":
		c.DBEngine = EngineSQLite
	case "postgresql", "pg", "networked":
		c.DBEngine = EnginePostgres
	case EngineSQLite, EnginePostgres:
	default:
		return fmt.Errorf("unsupported DB_ENGINE %q", c.DBEngine)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWTSecret = devJWTSecret
	}
	return nil
}

// PostgresDSN builds the connection string for the networked engine.
func (c *Config) PostgresDSN() (string, error) {
	if c.DBURL != "" {
		dsn := c.DBURL
		// Hosted databases want TLS unless told otherwise
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn, nil
	}

	if c.DBHost == "" || c.DBPort == "" || c.DBUser == "" || c.DBPassword == "" || c.DBName == "" {
		return "", errors.New("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if c.DBHost == "localhost" || c.DBHost == "127.0.0.1" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, sslMode), nil
}

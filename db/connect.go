package db

import (
	"context"
	"fmt"

	"mentesana-server/confs"
	"mentesana-server/logger"
)

// Connect opens the engine selected by cfg and makes sure the schema and
// seed data exist.
func Connect(ctx context.Context, cfg *confs.Config) (Database, error) {
	opts := Options{
		LogLevel:    cfg.DBLogLevel,
		SlowQuery:   cfg.DBSlowQuery,
		PrepareStmt: true,
		NativeTx:    cfg.EmbeddedTx,
	}

	var (
		database *GormDatabase
		err      error
	)
	switch cfg.DBEngine {
	case confs.EngineSQLite:
		logger.Info("connecting", "engine", EngineSQLite, "path", cfg.SQLitePath)
		database, err = OpenEmbedded(cfg.SQLitePath, opts)
	case confs.EnginePostgres:
		dsn, dsnErr := cfg.PostgresDSN()
		if dsnErr != nil {
			return nil, dsnErr
		}
		logger.Info("connecting", "engine", EnginePostgres, "url", cfg.DBURL != "")
		database, err = OpenNetworked(dsn, opts)
	default:
		return nil, fmt.Errorf("unsupported engine %q", cfg.DBEngine)
	}
	if err != nil {
		return nil, err
	}

	if err := database.Ping(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("database not reachable: %w", err)
	}

	logger.Info("running schema initialization", "engine", database.Engine())
	if err := InitSchema(ctx, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info("schema initialization completed", "engine", database.Engine())
	return database, nil
}

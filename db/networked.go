package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mentesana-server/logger"
)

// OpenNetworked connects to PostgreSQL using dsn.
func OpenNetworked(dsn string, opts Options) (*GormDatabase, error) {
	return openNetworked(postgres.Open(dsn), opts)
}

func openNetworked(dialector gorm.Dialector, opts Options) (*GormDatabase, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:      newGormLogger(opts.LogLevel, opts.SlowQuery),
		PrepareStmt: opts.PrepareStmt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	logger.Info("database connection established", "engine", EnginePostgres)
	// The networked engine always has real transactions.
	return newGormDatabase(gdb, EnginePostgres, true), nil
}

package db

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"mentesana-server/logger"
)

// embeddedPragmas are applied on every connection the driver opens.
var embeddedPragmas = []string{
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"journal_mode(WAL)",
}

func embeddedDSN(path string) string {
	q := url.Values{}
	for _, p := range embeddedPragmas {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

// OpenEmbedded opens (creating if needed) the SQLite file at path.
func OpenEmbedded(path string, opts Options) (*GormDatabase, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	gdb, err := gorm.Open(gormsqlite.Dialector{
		DriverName: "sqlite",
		DSN:        embeddedDSN(path),
	}, &gorm.Config{
		Logger:      newGormLogger(opts.LogLevel, opts.SlowQuery),
		PrepareStmt: opts.PrepareStmt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// One writer at a time; a single connection also keeps pragmas and
	// last-insert-id consistent.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	mode := "native"
	if !opts.NativeTx {
		mode = "compensating"
	}
	logger.Info("embedded database opened", "path", path, "tx", mode)
	return newGormDatabase(gdb, EngineSQLite, opts.NativeTx), nil
}

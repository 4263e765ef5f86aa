package db

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"mentesana-server/logger"
	"mentesana-server/metrics"
)

// Engine identifies the relational engine behind a Database.
type Engine string

const (
	EngineSQLite   Engine = "SQLite"
	EnginePostgres Engine = "PostgreSQL"
)

// Embedded reports whether the engine is the file-backed one.
func (e Engine) Embedded() bool { return e == EngineSQLite }

// Result is what Execute reports for INSERT/UPDATE/DELETE statements.
type Result struct {
	RowsAffected int64
	InsertedID   int64
}

// Executor runs bound statements. Repositories depend on it so the same code
// runs on the pool, on a native transaction or on a compensating unit of work.
type Executor interface {
	// Execute runs a statement. A "RETURNING <col>" clause fills InsertedID
	// on every engine; without it InsertedID comes from the driver when it
	// supports last-insert-id.
	Execute(ctx context.Context, query string, params Params) (Result, error)
	// QueryOne returns the first row, or nil when there is none.
	QueryOne(ctx context.Context, query string, params Params) (Row, error)
	QueryAll(ctx context.Context, query string, params Params) ([]Row, error)
	Engine() Engine
}

// Tx is the executor handed to an Atomic unit of work.
type Tx interface {
	Executor
	// Compensate registers a statement that undoes work done so far. It only
	// runs when the engine has no native transaction and the unit fails.
	Compensate(query string, params Params)
}

// Database is the persistence adapter shared by the whole process.
type Database interface {
	Executor
	// Atomic runs fn as one all-or-nothing unit of work.
	Atomic(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
	Close() error
	GetDB() *gorm.DB
}

// Options tune a GormDatabase.
type Options struct {
	LogLevel    string
	SlowQuery   time.Duration
	PrepareStmt bool
	// NativeTx selects real transactions for Atomic. When false, units of
	// work run in autocommit mode, serialized, with compensations replayed
	// on failure.
	NativeTx bool
}

// GormDatabase implements Database for both engines on top of gorm.
type GormDatabase struct {
	DB *gorm.DB

	exec     gormExecutor
	nativeTx bool
	// gate serializes compensating units of work against other statements.
	gate sync.RWMutex
}

func newGormDatabase(gdb *gorm.DB, engine Engine, nativeTx bool) *GormDatabase {
	return &GormDatabase{
		DB:       gdb,
		exec:     gormExecutor{db: gdb, engine: engine},
		nativeTx: nativeTx,
	}
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }

func (g *GormDatabase) Engine() Engine { return g.exec.engine }

// NativeTx reports whether Atomic uses engine transactions.
func (g *GormDatabase) NativeTx() bool { return g.nativeTx }

func (g *GormDatabase) enter() func() {
	if g.nativeTx {
		return func() {}
	}
	g.gate.RLock()
	return g.gate.RUnlock
}

func (g *GormDatabase) Execute(ctx context.Context, query string, params Params) (Result, error) {
	defer g.enter()()
	return g.exec.Execute(ctx, query, params)
}

func (g *GormDatabase) QueryOne(ctx context.Context, query string, params Params) (Row, error) {
	defer g.enter()()
	return g.exec.QueryOne(ctx, query, params)
}

func (g *GormDatabase) QueryAll(ctx context.Context, query string, params Params) ([]Row, error) {
	defer g.enter()()
	return g.exec.QueryAll(ctx, query, params)
}

// Atomic runs fn as one unit of work. fn must only use the Tx it receives;
// calling back into g from inside fn can block in compensating mode.
func (g *GormDatabase) Atomic(ctx context.Context, fn func(tx Tx) error) error {
	var err error
	if g.nativeTx {
		err = g.atomicNative(ctx, fn)
		metrics.RecordAtomic(string(g.Engine()), "native", err)
	} else {
		err = g.atomicCompensating(ctx, fn)
		metrics.RecordAtomic(string(g.Engine()), "compensating", err)
	}
	return err
}

func (g *GormDatabase) atomicNative(ctx context.Context, fn func(tx Tx) error) error {
	tx := g.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return translate(g.Engine(), tx.Error)
	}

	rollback := func() {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			logger.Error("rollback failed", "engine", g.Engine(), "error", rbErr)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err := fn(&nativeTx{gormExecutor{db: tx, engine: g.Engine()}}); err != nil {
		rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return translate(g.Engine(), err)
	}
	return nil
}

func (g *GormDatabase) atomicCompensating(ctx context.Context, fn func(tx Tx) error) error {
	g.gate.Lock()
	defer g.gate.Unlock()

	tx := &compensatingTx{gormExecutor: g.exec}
	defer func() {
		if r := recover(); r != nil {
			g.compensate(ctx, tx.undo)
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		g.compensate(ctx, tx.undo)
		return err
	}
	return nil
}

// compensate replays undo statements newest first. It keeps going after a
// failure so that as much as possible is restored.
func (g *GormDatabase) compensate(ctx context.Context, undo []compensation) {
	ctx = context.WithoutCancel(ctx)
	for i := len(undo) - 1; i >= 0; i-- {
		_, err := g.exec.Execute(ctx, undo[i].query, undo[i].params)
		metrics.RecordCompensation(err)
		if err != nil {
			logger.Error("compensation failed", "engine", g.Engine(), "step", i, "error", err)
		}
	}
}

func (g *GormDatabase) Ping(ctx context.Context) error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return translate(g.Engine(), err)
	}
	return translate(g.Engine(), sqlDB.PingContext(ctx))
}

func (g *GormDatabase) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

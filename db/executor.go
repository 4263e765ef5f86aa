package db

import (
	"context"
	"regexp"
	"time"

	"gorm.io/gorm"

	"mentesana-server/metrics"
)

var returningRe = regexp.MustCompile(`(?i)\bRETURNING\s`)

// gormExecutor runs bound statements through a gorm handle. The handle is
// either the pool or an open transaction.
type gormExecutor struct {
	db     *gorm.DB
	engine Engine
}

func (e *gormExecutor) Engine() Engine { return e.engine }

func (e *gormExecutor) Execute(ctx context.Context, query string, params Params) (Result, error) {
	b, err := Bind(e.engine, query, params)
	if err != nil {
		return Result{}, err
	}

	if returningRe.MatchString(b.SQL) {
		cols, rows, err := e.rows(ctx, "exec", b)
		if err != nil {
			return Result{}, err
		}
		res := Result{RowsAffected: int64(len(rows))}
		if len(rows) > 0 && len(cols) > 0 {
			res.InsertedID = rows[0].Int64(cols[0])
		}
		return res, nil
	}

	start := time.Now()
	built := e.db.WithContext(ctx).Raw(b.SQL, b.Vars()...)
	if built.Error != nil {
		return Result{}, translate(e.engine, built.Error)
	}
	stmt := built.Statement
	sqlText := stmt.SQL.String()
	out, err := stmt.ConnPool.ExecContext(ctx, sqlText, stmt.Vars...)
	var res Result
	if err == nil {
		res.RowsAffected, _ = out.RowsAffected()
		// Drivers without last-insert-id report an error here; zero is fine.
		res.InsertedID, _ = out.LastInsertId()
	}
	e.db.Logger.Trace(ctx, start, func() (string, int64) {
		return e.db.Dialector.Explain(sqlText, stmt.Vars...), res.RowsAffected
	}, err)
	metrics.RecordStatement(string(e.engine), "exec", time.Since(start), err)
	if err != nil {
		return Result{}, translate(e.engine, err)
	}
	return res, nil
}

func (e *gormExecutor) QueryOne(ctx context.Context, query string, params Params) (Row, error) {
	rows, err := e.QueryAll(ctx, query, params)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (e *gormExecutor) QueryAll(ctx context.Context, query string, params Params) ([]Row, error) {
	b, err := Bind(e.engine, query, params)
	if err != nil {
		return nil, err
	}
	_, rows, err := e.rows(ctx, "query", b)
	return rows, err
}

func (e *gormExecutor) rows(ctx context.Context, op string, b Bound) ([]string, []Row, error) {
	start := time.Now()
	cols, out, err := e.scan(ctx, b)
	metrics.RecordStatement(string(e.engine), op, time.Since(start), err)
	if err != nil {
		return nil, nil, translate(e.engine, err)
	}
	return cols, out, nil
}

func (e *gormExecutor) scan(ctx context.Context, b Bound) ([]string, []Row, error) {
	rows, err := e.db.WithContext(ctx).Raw(b.SQL, b.Vars()...).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// nativeTx is a unit of work backed by a real engine transaction. Rollback
// undoes everything, so compensations are not needed.
type nativeTx struct {
	gormExecutor
}

func (*nativeTx) Compensate(string, Params) {}

type compensation struct {
	query  string
	params Params
}

// compensatingTx runs statements in autocommit mode and remembers how to
// undo them.
type compensatingTx struct {
	gormExecutor
	undo []compensation
}

func (t *compensatingTx) Compensate(query string, params Params) {
	t.undo = append(t.undo, compensation{query: query, params: params})
}

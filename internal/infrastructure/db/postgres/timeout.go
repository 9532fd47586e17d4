package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// WithTimeout bounds every statement issued through db by d. Rows and rows
// returned by Query and QueryRow keep their context until closed or scanned.
func WithTimeout(db DB, d time.Duration) DB {
	if d <= 0 {
		d = defaultTimeout
	}
	return &timeoutDB{db: db, timeout: d}
}

type timeoutDB struct {
	db      DB
	timeout time.Duration
}

func (t *timeoutDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.db.Exec(ctx, sql, args...)
}

func (t *timeoutDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		cancel()
		return nil, err
	}
	return &cancelRows{Rows: rows, cancel: cancel}, nil
}

func (t *timeoutDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	return &cancelRow{row: t.db.QueryRow(ctx, sql, args...), cancel: cancel}
}

func (t *timeoutDB) Begin(ctx context.Context) (pgx.Tx, error) {
	beginCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	tx, err := t.db.Begin(beginCtx)
	if err != nil {
		return nil, err
	}
	return &timeoutTx{Tx: tx, timeout: t.timeout}, nil
}

// timeoutTx applies the same per-statement bound inside a transaction.
type timeoutTx struct {
	pgx.Tx
	timeout time.Duration
}

func (t *timeoutTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Tx.Exec(ctx, sql, args...)
}

func (t *timeoutTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	rows, err := t.Tx.Query(ctx, sql, args...)
	if err != nil {
		cancel()
		return nil, err
	}
	return &cancelRows{Rows: rows, cancel: cancel}, nil
}

func (t *timeoutTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	return &cancelRow{row: t.Tx.QueryRow(ctx, sql, args...), cancel: cancel}
}

func (t *timeoutTx) Commit(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Tx.Commit(ctx)
}

func (t *timeoutTx) Rollback(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Tx.Rollback(ctx)
}

type cancelRows struct {
	pgx.Rows
	cancel context.CancelFunc
}

func (r *cancelRows) Close() {
	r.Rows.Close()
	r.cancel()
}

type cancelRow struct {
	row    pgx.Row
	cancel context.CancelFunc
}

func (r *cancelRow) Scan(dest ...any) error {
	defer r.cancel()
	return r.row.Scan(dest...)
}

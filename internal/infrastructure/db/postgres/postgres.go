// Package postgres holds the relational repositories: users, profiles,
// skills, jobs, applications and portfolio items.
package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings required to open the connection pool.
type Config struct {
	URL      string
	MaxConns int32
	Timeout  time.Duration
}

// DB is the subset of pgxpool.Pool used by the repositories.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Connect opens a pgx pool and verifies connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "postgres parse config")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(timeout.Milliseconds(), 10)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "postgres connect")
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, pkgerrors.Wrap(err, "postgres ping")
	}
	return pool, nil
}

// psql builds statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// withTx runs fn inside a transaction, committing on success.
func withTx(ctx context.Context, db DB, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return pkgerrors.Wrap(err, "commit tx")
	}
	return nil
}

// replaceLinks rewrites the (owner, skill) rows of a link table.
func replaceLinks(ctx context.Context, tx pgx.Tx, table, ownerCol string, ownerID int64, skillIDs []int64) error {
	if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE "+ownerCol+" = $1", ownerID); err != nil {
		return pkgerrors.Wrapf(err, "clear %s", table)
	}
	if len(skillIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		"INSERT INTO "+table+" ("+ownerCol+", skill_id) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING",
		ownerID, skillIDs)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return errUnknownSkill
		}
		return pkgerrors.Wrapf(err, "insert %s", table)
	}
	return nil
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

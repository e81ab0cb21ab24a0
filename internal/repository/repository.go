package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store drivers accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewPool opens a PostgreSQL connection pool and pings it.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Store bundles the submission repository with its liveness probe and
// the function releasing the underlying connection.
type Store struct {
	Submissions SubmissionRepository
	DB          DB
	Close       func()
}

// Open connects to the store selected by driver. dsn is a PostgreSQL
// connection string for DriverPostgres and a file path for DriverSQLite.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case DriverPostgres:
		pool, err := NewPool(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Store{
			Submissions: NewPgSubmissionRepository(pool),
			DB:          pool,
			Close:       pool.Close,
		}, nil
	case DriverSQLite:
		repo, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return &Store{
			Submissions: repo,
			DB:          repo,
			Close:       func() { _ = repo.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

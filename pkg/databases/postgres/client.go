package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq" // PostgreSQL driver for database/sql

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/pkg/databases/sqldb"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Dialect is the PostgreSQL flavour of sqldb. Tables carry no implicit row
// sequence, so FindMany ties come back in heap order.
var Dialect = sqldb.Dialect{
	DriverName:     "postgres",
	Placeholder:    func(n int) string { return fmt.Sprintf("$%d", n) },
	IsDuplicateKey: IsDuplicateKey,
}

// NewPostgresDatabaseClient returns a DBClient for PostgreSQL. Zero pool
// options fall back to the sqldb defaults.
func NewPostgresDatabaseClient(cfg *config.PostgresConfig, logger interfaces.Logger) *sqldb.Client {
	return sqldb.NewClient(Dialect, sqldb.PoolOptions{
		MaxOpenConns:    cfg.Options.MaxOpenConns,
		MaxIdleConns:    cfg.Options.MaxIdleConns,
		ConnMaxLifetime: cfg.Options.ConnMaxLifetime,
	}, cfg.ValidTables, cfg.ValidFields, logger)
}

func IsDuplicateKey(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

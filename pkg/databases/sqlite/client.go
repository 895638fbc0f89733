package sqlite

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/pkg/databases/sqldb"
)

// DriverName is the database/sql name registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Dialect is the SQLite flavour of sqldb: '?' placeholders,
// SQLITE_CONSTRAINT_UNIQUE / PRIMARYKEY as duplicate keys and rowid as the
// insertion order.
var Dialect = sqldb.Dialect{
	DriverName:     DriverName,
	Placeholder:    func(int) string { return "?" },
	IsDuplicateKey: IsDuplicateKey,
	InsertionOrder: "rowid",
}

// NewSQLiteDatabaseClient returns a DBClient backed by an SQLite file (or
// :memory:). The pool holds a single connection, so writes are serialized
// and an in-memory database is shared by every query.
func NewSQLiteDatabaseClient(cfg *config.SQLiteConfig, logger interfaces.Logger) *sqldb.Client {
	return sqldb.NewClient(Dialect, sqldb.PoolOptions{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		// an in-memory database dies with its connection
		ConnMaxLifetime: sqldb.NoLifetimeLimit,
	}, cfg.ValidTables, cfg.ValidFields, logger)
}

// IsDuplicateKey reports whether err is a UNIQUE or PRIMARY KEY violation.
func IsDuplicateKey(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		return false
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

package accountrepo

import "github.com/haguru/kakashi/internal/interfaces"

// usersTable is valid for both SQLite and PostgreSQL.
var usersTable = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
}

// NewSQLAccountRepository creates an account repository over an SQLite or PostgreSQL client.
func NewSQLAccountRepository(dbClient interfaces.DBClient) (*AccountRepository, error) {
	return newAccountRepository(dbClient, usersTable)
}

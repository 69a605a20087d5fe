package store

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/migrations"
)

// DB wraps a database/sql connection pool together with the driver name it
// was opened with. The driver name selects the migration dialect and the
// duplicate-key classification strategy.
type DB struct {
	*sql.DB
	driver string
	logger *logger.Logger
}

// Migrate applies all embedded goose migrations for the DB's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Builder returns a squirrel statement builder configured for this database.
// Dollar placeholders work for both supported drivers: PostgreSQL natively,
// SQLite via its $NNN parameter syntax.
func (db *DB) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

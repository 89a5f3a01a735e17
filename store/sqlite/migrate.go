package sqlite

import (
	"database/sql"
	"embed"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// migrate applies the embedded versioned migrations. Safe to run on every
// startup; already-applied versions are skipped.
func migrate(db *sql.DB) error {
	migrator := sqlmigrator.New(db, darwin.SqliteDialect{})
	return migrator.Migrate(migrationFiles, "migrations")
}

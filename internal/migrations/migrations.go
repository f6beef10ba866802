package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var fs embed.FS

// Dialect names a goose dialect with its own migration directory.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

func (d Dialect) dir() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Run applies all pending migrations for dialect against db.
func Run(db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(fs)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}
	if err := goose.Up(db, dialect.dir()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate brings the schema up to date. Migrations are kept per driver
// because the id-column DDL differs between postgres and sqlite.
func Migrate(db *sql.DB, driverName string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(driverName); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations/"+driverName); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

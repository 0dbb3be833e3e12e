package database

import (
	"database/sql"
	"fmt"

	"eventhub/pkg/utils"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies pending goose migrations. Uses a separate
// database/sql connection because goose does not speak pgx natively.
func RunMigrations(config utils.DatabaseConfig) error {
	db, err := sql.Open("postgres", connString(config))
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, config.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

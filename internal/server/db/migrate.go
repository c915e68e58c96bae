// Package db runs the embedded dev-store migrations. This is the one place
// that holds a database handle for more than a single statement; the
// repositories themselves open and close a connection per operation.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userfed/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded schema to the store behind dsn.
func RunMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

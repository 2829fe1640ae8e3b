package db

import (
	"context"
	"database/sql"

	"github.com/Piroenzo/mini-red-social/internal/config"
	"github.com/Piroenzo/mini-red-social/internal/db/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var sqlOpenFn = sql.Open
var gooseUpFn = goose.UpContext

// RunMigrations applies the embedded schema migrations through goose using
// the pgx stdlib driver.
func RunMigrations(ctx context.Context, cfg config.Config) error {
	conn, err := sqlOpenFn("pgx", cfg.PostgresURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return gooseUpFn(ctx, conn, ".")
}

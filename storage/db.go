package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/harmonia/music-store/catalog"
)

// Open connects to the configured database. Supported drivers are "sqlite3"
// (development, tests) and "postgres".
func Open(driver, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	switch driver {
	case "sqlite3":
		// A single connection keeps in-memory databases from vanishing
		// between pooled connections.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres":
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		sqldb.Close()
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// InitSchema creates the catalog tables when they do not exist yet.
func InitSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*catalog.Category)(nil),
		(*catalog.Instrument)(nil),
		(*catalog.Customer)(nil),
		(*catalog.Review)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

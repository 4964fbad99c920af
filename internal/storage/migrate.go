package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// migration is a single forward-only schema step. Migrations are applied in
// version order exactly once; there is no down path.
type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create products",
		sql: `CREATE TABLE IF NOT EXISTS products (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT    NOT NULL,
			description TEXT,
			barcode     TEXT    NOT NULL,
			price_cents INTEGER NOT NULL,
			cost_cents  INTEGER NOT NULL,
			stock       INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		version: 2,
		name:    "create invoices",
		sql: `CREATE TABLE IF NOT EXISTS invoices (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			total_cents INTEGER NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		version: 3,
		name:    "create invoice_lines",
		sql: `CREATE TABLE IF NOT EXISTS invoice_lines (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT    NOT NULL,
			quantity    INTEGER NOT NULL,
			price_cents INTEGER NOT NULL,
			product_id  INTEGER REFERENCES products(id),
			invoice_id  INTEGER NOT NULL REFERENCES invoices(id),
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		version: 4,
		name:    "index barcode lookups",
		sql:     `CREATE INDEX IF NOT EXISTS idx_products_barcode ON products (barcode)`,
	},
}

// Migrate brings the store to the current schema version. It must run to
// completion before any command is accepted; a failure here is a fatal
// startup condition for the caller.
func Migrate(ctx context.Context, h *Handle) error {
	return h.Do(ctx, func(db *sqlx.DB) error {
		if _, err := db.ExecContext(ctx,
			`CREATE TABLE IF NOT EXISTS schema_migrations (
				version    INTEGER PRIMARY KEY,
				applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`); err != nil {
			return fmt.Errorf("storage: create schema_migrations: %w", err)
		}

		var current int
		if err := db.GetContext(ctx, &current,
			`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
			return fmt.Errorf("storage: read schema version: %w", err)
		}

		for _, m := range migrations {
			if m.version <= current {
				continue
			}
			if _, err := db.ExecContext(ctx, m.sql); err != nil {
				return fmt.Errorf("storage: migration %d (%s): %w", m.version, m.name, err)
			}
			if _, err := db.ExecContext(ctx,
				`INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
				return fmt.Errorf("storage: record migration %d: %w", m.version, err)
			}
			log.Info().Int("version", m.version).Str("name", m.name).Msg("migration applied")
		}
		return nil
	})
}

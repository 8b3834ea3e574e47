package database

import (
	"context"
	"fmt"
	"log"
)

// items is the only table in the system. BIGSERIAL ids are monotonic and
// never reused after deletion; photo_key NULL means the item has no photo.
const schemaItems = `
CREATE TABLE IF NOT EXISTS items (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL CHECK (name <> ''),
    description TEXT NOT NULL DEFAULT '',
    photo_key   TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema bootstraps the database schema at startup.
// Every statement is idempotent, so repeated starts are harmless.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	if _, err := db.Pool.Exec(ctx, schemaItems); err != nil {
		return fmt.Errorf("failed to create items table: %w", err)
	}

	log.Println("[DATABASE] Schema ensured")
	return nil
}

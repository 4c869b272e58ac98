package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTags, downCreateTags)
}

// name_key holds the case folded name. It is indexed but not unique so that rows
// written before folding was introduced can coexist; lookups take the lowest id.
func upCreateTags(ctx context.Context, tx *sql.Tx) error {
	var stmts []string
	switch dialect {
	case "postgres":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS tags (
    id         BIGSERIAL PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    name_key   VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`,
			`CREATE INDEX IF NOT EXISTS tags_name_key_idx ON tags (name_key)`,
		}
	case "mysql":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS tags (
    id         BIGINT AUTO_INCREMENT PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    name_key   VARCHAR(255) NOT NULL,
    created_at DATETIME(6) NOT NULL,
    updated_at DATETIME(6) NOT NULL,
    INDEX tags_name_key_idx (name_key)
) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`,
		}
	default: // sqlite3
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS tags (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    name_key   TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
)`,
			`CREATE INDEX IF NOT EXISTS tags_name_key_idx ON tags (name_key)`,
		}
	}
	if err := execAll(ctx, tx, stmts...); err != nil {
		return fmt.Errorf("create tags table: %w", err)
	}
	return nil
}

func downCreateTags(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS tags`)
	return err
}

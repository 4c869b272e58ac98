package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTaggings, downCreateTaggings)
}

// A tag is attached to a resource at most once; concurrent saves of the same
// resource that race past the diff fail on taggings_unique_idx.
func upCreateTaggings(ctx context.Context, tx *sql.Tx) error {
	var stmts []string
	switch dialect {
	case "postgres":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS taggings (
    id            BIGSERIAL PRIMARY KEY,
    tag_id        BIGINT NOT NULL REFERENCES tags(id),
    resource_type VARCHAR(50) NOT NULL,
    resource_id   VARCHAR(64) NOT NULL,
    tagged_by     VARCHAR(255) NOT NULL DEFAULT '',
    source        VARCHAR(255) NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS taggings_unique_idx ON taggings (tag_id, resource_type, resource_id)`,
			`CREATE INDEX IF NOT EXISTS taggings_resource_idx ON taggings (resource_type, resource_id)`,
		}
	case "mysql":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS taggings (
    id            BIGINT AUTO_INCREMENT PRIMARY KEY,
    tag_id        BIGINT NOT NULL,
    resource_type VARCHAR(50) NOT NULL,
    resource_id   VARCHAR(64) NOT NULL,
    tagged_by     VARCHAR(255) NOT NULL DEFAULT '',
    source        VARCHAR(255) NOT NULL DEFAULT '',
    created_at    DATETIME(6) NOT NULL,
    updated_at    DATETIME(6) NOT NULL,
    UNIQUE INDEX taggings_unique_idx (tag_id, resource_type, resource_id),
    INDEX taggings_resource_idx (resource_type, resource_id),
    CONSTRAINT taggings_tag_fk FOREIGN KEY (tag_id) REFERENCES tags(id)
) CHARACTER SET utf8mb4`,
		}
	default: // sqlite3
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS taggings (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    tag_id        INTEGER NOT NULL REFERENCES tags(id),
    resource_type TEXT NOT NULL,
    resource_id   TEXT NOT NULL,
    tagged_by     TEXT NOT NULL DEFAULT '',
    source        TEXT NOT NULL DEFAULT '',
    created_at    DATETIME NOT NULL,
    updated_at    DATETIME NOT NULL
)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS taggings_unique_idx ON taggings (tag_id, resource_type, resource_id)`,
			`CREATE INDEX IF NOT EXISTS taggings_resource_idx ON taggings (resource_type, resource_id)`,
		}
	}
	if err := execAll(ctx, tx, stmts...); err != nil {
		return fmt.Errorf("create taggings table: %w", err)
	}
	return nil
}

func downCreateTaggings(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS taggings`)
	return err
}

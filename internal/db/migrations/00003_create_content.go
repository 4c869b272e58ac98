package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateContent, downCreateContent)
}

func upCreateContent(ctx context.Context, tx *sql.Tx) error {
	idType, textType, tsType := "TEXT", "TEXT", "DATETIME"
	switch dialect {
	case "postgres":
		idType, textType, tsType = "VARCHAR(64)", "TEXT", "TIMESTAMPTZ"
	case "mysql":
		idType, textType, tsType = "VARCHAR(64)", "VARCHAR(255)", "DATETIME(6)"
	}
	for _, table := range []string{"articles", "notes"} {
		ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id         %s PRIMARY KEY,
    title      %s NOT NULL,
    created_at %s NOT NULL,
    updated_at %s NOT NULL
)`, table, idType, textType, tsType, tsType)
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create %s table: %w", table, err)
		}
	}
	return nil
}

func downCreateContent(ctx context.Context, tx *sql.Tx) error {
	return execAll(ctx, tx, `DROP TABLE IF EXISTS notes`, `DROP TABLE IF EXISTS articles`)
}

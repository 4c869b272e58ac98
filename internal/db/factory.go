package db

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// New connects to the tag database. driver is one of sqlite3, mysql or postgres.
//
// sqlite3 goes through the CGO-free modernc driver and switches the file to WAL so readers
// of tag counts are not blocked by a flushing writer. MySQL DSNs are rewritten with
// parseTime=true because tag and tagging timestamps scan into time.Time. Postgres DSNs are
// passed to lib/pq unchanged; inserts there read ids back with RETURNING.
func New(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite3":
		conn, err := sqlx.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("sqlite journal mode: %w", err)
		}
		return conn, nil
	case "mysql":
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		return open("mysql", cfg.FormatDSN())
	case "postgres":
		return open("postgres", dsn)
	default:
		return nil, fmt.Errorf("unsupported DB driver %q: must be sqlite3, mysql, or postgres", driver)
	}
}

func open(name, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return conn, nil
}

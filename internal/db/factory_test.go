package db

import (
	"strings"
	"testing"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New("oracle", "")
	if err == nil || !strings.Contains(err.Error(), "oracle") {
		t.Fatalf("New(oracle) error = %v, want unsupported driver", err)
	}
}

func TestNew_SQLite(t *testing.T) {
	conn, err := New("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New(sqlite3): %v", err)
	}
	defer conn.Close()

	if err := Up(conn, "sqlite3"); err != nil {
		t.Fatalf("Up: %v", err)
	}
	var n int
	if err := conn.Get(&n, `SELECT COUNT(*) FROM tags`); err != nil {
		t.Fatalf("count tags: %v", err)
	}
}

func TestNew_MySQLBadDSN(t *testing.T) {
	if _, err := New("mysql", "no-slash-here"); err == nil {
		t.Fatal("New(mysql) accepted a DSN without a database path")
	}
}

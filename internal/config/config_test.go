package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Env(t *testing.T) {
	t.Setenv("TAGGABLE_DB_DRIVER", "sqlite3")
	t.Setenv("TAGGABLE_DB_DSN", "file:taggable.db")
	t.Setenv("TAGGABLE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Driver != "sqlite3" {
		t.Errorf("driver = %q, want sqlite3", cfg.DB.Driver)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Tags.Separator != "," {
		t.Errorf("separator = %q, want ,", cfg.Tags.Separator)
	}
}

func TestLoad_Required(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		dsn    string
	}{
		{"missing driver", "", "file:taggable.db"},
		{"missing dsn", "sqlite3", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TAGGABLE_DB_DRIVER", tt.driver)
			t.Setenv("TAGGABLE_DB_DSN", tt.dsn)
			if _, err := Load(""); err == nil {
				t.Error("Load: expected error")
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taggable.yaml")
	yaml := "db:\n  driver: postgres\n  dsn: postgres://localhost/tags\ntags:\n  separator: \";\"\nlog:\n  format: console\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.Driver != "postgres" || cfg.DB.DSN != "postgres://localhost/tags" {
		t.Errorf("db = %+v", cfg.DB)
	}
	if cfg.Tags.Separator != ";" {
		t.Errorf("separator = %q, want ;", cfg.Tags.Separator)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("log format = %q, want console", cfg.Log.Format)
	}
	if cfg.File() != path {
		t.Errorf("File() = %q, want %q", cfg.File(), path)
	}
}

func TestLoad_FileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load: expected error for missing file")
	}
}

func TestWatch_NoFile(t *testing.T) {
	t.Setenv("TAGGABLE_DB_DRIVER", "sqlite3")
	t.Setenv("TAGGABLE_DB_DSN", "file:taggable.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Watch(func(*Config) {}, nil) {
		t.Error("Watch reported a watched file without a config file")
	}
}

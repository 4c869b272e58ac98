package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/joestump/taggable/internal/config"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	SetLevel("debug")
	if got := zerolog.GlobalLevel(); got != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
	SetLevel("loud")
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Errorf("level = %v, want info fallback", got)
	}
}

func TestInit_File(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	path := filepath.Join(t.TempDir(), "taggable.log")

	closer, err := Init(config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	l := New("test")
	l.Info().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"component":"test"`) || !strings.Contains(string(b), `"message":"hello"`) {
		t.Errorf("log = %s", b)
	}
}

func TestInit_FileError(t *testing.T) {
	_, err := Init(config.LogConfig{Output: "file", FilePath: filepath.Join(t.TempDir(), "missing", "x.log")})
	if err == nil {
		t.Error("Init: expected error for unwritable path")
	}
}

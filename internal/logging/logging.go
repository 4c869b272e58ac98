// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/joestump/taggable/internal/config"
)

// Init configures the global zerolog logger. The returned closer releases the log file,
// if one was opened.
func Init(cfg config.LogConfig) (io.Closer, error) {
	SetLevel(cfg.Level)

	var (
		output io.Writer = os.Stdout
		closer io.Closer = io.NopCloser(nil)
	)
	if cfg.Output == "file" {
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		output, closer = f, f
	}

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	return closer, nil
}

// SetLevel sets the global level. Unknown levels fall back to info.
func SetLevel(level string) {
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
}

// New returns a child of the global logger tagged with component.
func New(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

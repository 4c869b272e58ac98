package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/joestump/taggable/internal/build"
	"github.com/joestump/taggable/internal/config"
	"github.com/joestump/taggable/internal/db"
	"github.com/joestump/taggable/internal/logging"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "taggable",
		Short:        "Tag articles and notes",
		Long:         "taggable stores free-form tags for resources and answers tag usage queries.",
		Version:      build.String(),
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./taggable.yaml)")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newMigrateCmd(&configPath))
	rootCmd.AddCommand(newTagsCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every command needs: config, logger output and an open database.
type env struct {
	cfg    *config.Config
	db     *sqlx.DB
	logOut io.Closer
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	if e.logOut != nil {
		_ = e.logOut.Close()
	}
}

// setup loads the config, configures logging and opens the database. When migrate is set
// pending migrations are applied before returning.
func setup(configPath string, migrate bool) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	out, err := logging.Init(cfg.Log)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logOut: out}

	database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.db = database

	if migrate {
		if err := db.Migrate(database, cfg.DB.Driver); err != nil {
			e.Close()
			return nil, err
		}
		log.Debug().Str("driver", cfg.DB.Driver).Msg("migrations applied")
	}
	return e, nil
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/joestump/taggable/internal/db"
	"github.com/joestump/taggable/internal/logging"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	var status bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*configPath, false)
			if err != nil {
				return err
			}
			defer e.Close()

			if status {
				return db.Status(e.db, e.cfg.DB.Driver)
			}
			if err := db.Migrate(e.db, e.cfg.DB.Driver); err != nil {
				return err
			}
			log := logging.New("migrate")
			log.Info().Str("driver", e.cfg.DB.Driver).Msg("migrations complete")
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "print migration status instead of migrating")
	return cmd
}

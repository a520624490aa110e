package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"periodic-tables/backend/pkg/database"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := database.Up
			if len(args) == 1 {
				dir = database.Direction(args[0])
			}

			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer closeStore(db)

			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("sql.DB: %w", err)
			}
			return database.Migrate(sqlDB, dir, logger)
		},
	}
}

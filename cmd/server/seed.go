package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"periodic-tables/backend/internal/repository"
	"periodic-tables/backend/internal/seed"
)

func newSeedCmd(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo tables and reservations into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadSeed(file)
			if err != nil {
				return err
			}

			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore(db)

			_, err = seed.Apply(cmd.Context(), repository.NewRepository(db), data, logger)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "seed YAML file (defaults to the built-in demo data)")
	return cmd
}

func loadSeed(file string) (*seed.Data, error) {
	if file == "" {
		return seed.Default()
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return seed.Parse(raw)
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			if err := dbpkg.Migrate(a.db); err != nil {
				return err
			}
			a.log.Info("postgres schema up to date")

			if a.cfg.RegistryBackend == config.RegistryMongo {
				if _, err := a.registry(cmd.Context()); err != nil {
					return err
				}
				a.log.Info("mongo registry reachable", zap.String("database", a.cfg.MongoDatabase))
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	mongoMigration "tablebooker/internal/migrations/mongo"
	"tablebooker/pkg/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "migrate",
		Short: "Create collections, validators and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(timeout, func(ctx context.Context, cfg *config.Config) error {
				db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
				if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Fprintln(os.Stdout, "Migration completed successfully.")
				return nil
			})
		},
	}

	c.Flags().DurationVar(&timeout, "timeout", 120*time.Second, "overall deadline")
	return c
}

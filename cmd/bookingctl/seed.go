package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"tablebooker/internal/seed"
	"tablebooker/pkg/config"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var timeout time.Duration

	c := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the default booking policy, time slots, sections and tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(timeout, func(ctx context.Context, cfg *config.Config) error {
				db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
				if err := seed.Run(ctx, db, seed.DefaultData(), cfg.Log); err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, "Seed completed successfully.")
				return nil
			})
		},
	}

	c.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "overall deadline")
	return c
}

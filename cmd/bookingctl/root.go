package main

import (
	"context"
	"time"

	"tablebooker/pkg/config"

	"github.com/spf13/cobra"
)

const JobName = "bookingctl"

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "Operator tooling for the table booking database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())

	return root
}

// withDatabase connects to Mongo, runs fn and disconnects.
func withDatabase(timeout time.Duration, fn func(ctx context.Context, cfg *config.Config) error) error {
	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return fn(ctx, cfg)
}

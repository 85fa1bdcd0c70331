package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"skabillium/strq/cmd/db"
)

func serverCommand(ctx context.Context, logger *logrus.Logger) *cobra.Command {
	options := &ServerOptions{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the strq queue server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := options.validate(); err != nil {
				return err
			}
			if err := options.configureLogger(logger); err != nil {
				return err
			}

			database := db.NewDatabase(db.NewBudget(options.MaxMemory))
			defer database.FlushAll()

			logger.WithFields(logrus.Fields{
				"addr":      options.Addr(),
				"maxmemory": options.MaxMemory,
			}).Debug("server options")

			return errors.Wrap(NewServer(options.Addr(), database, logger).Serve(ctx), "server")
		},
	}
	options.bindFlags(cmd)

	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	root := &cobra.Command{
		Use:           "strq",
		Short:         "In-memory string queue server",
		Version:       StrqVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		serverCommand(ctx, logger),
		clientCommand(ctx, logger),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		logger.WithContext(ctx).Fatalf("failed to execute root command: %v", err)
	}
}

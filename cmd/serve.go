package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JOBrien987/ProcessRoaster/internal/api"
	"github.com/JOBrien987/ProcessRoaster/internal/config"
	"github.com/JOBrien987/ProcessRoaster/internal/notification"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scanner with an HTTP API",
	Long:  `Runs the scan loop in the background and serves the ranked summary, system counters, and alert history over HTTP.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Global

	notifier, err := notification.NewNotifier(cfg.Notifications.LogFile, cfg.Notifications.ColorEnabled, cfg.Notifications.Verbose)
	if err != nil {
		return fmt.Errorf("creating notifier: %w", err)
	}
	defer notifier.Close()

	scanner, store, cleanup, err := buildScanner(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	scanner.AddSink(notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scanner.Start(ctx)

	notifier.Info(fmt.Sprintf("Serving API on %s", cfg.API.Listen))

	server := api.NewServer(scanner, store)
	return server.Run(cfg.API.Listen)
}

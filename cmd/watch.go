package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JOBrien987/ProcessRoaster/internal/config"
	"github.com/JOBrien987/ProcessRoaster/internal/monitor"
	"github.com/JOBrien987/ProcessRoaster/internal/notification"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Foreground monitoring with text output",
	Long:  `Monitors processes and displays the ranked summary in a text table, refreshing at the configured poll interval. Fired alerts go to the terminal, the CSV alert log, and the history store.`,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Global

	notifier, err := notification.NewNotifier(cfg.Notifications.LogFile, cfg.Notifications.ColorEnabled, cfg.Notifications.Verbose)
	if err != nil {
		return fmt.Errorf("creating notifier: %w", err)
	}
	defer notifier.Close()

	notifier.Info("ProcessRoaster starting...")

	scanner, _, cleanup, err := buildScanner(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	scanner.AddSink(notifier)

	scanner.OnUpdate(func(entries []monitor.SummaryEntry, metrics *monitor.SystemMetrics) {
		// Clear screen
		fmt.Print("\033[H\033[2J")

		// Header
		fmt.Printf("\033[1mProcessRoaster\033[0m | Procs: %d | CPU: %.1f%% | Mem: %.1f%% | Cores: %d | Threshold: %.1f%% for %.0fs\n",
			metrics.NumProcs, metrics.CPUPercent, metrics.MemPercent, metrics.Cores,
			cfg.Monitoring.CPUThreshold, cfg.Monitoring.DurationSeconds)
		fmt.Println("──────────────────────────────────────────────────────────────────────")
		fmt.Printf("%7s %-25s %7s %9s %s\n", "PID", "NAME", "CPU%", "MEM(MB)", "FLAG")
		fmt.Println("──────────────────────────────────────────────────────────────────────")

		for _, e := range entries {
			flag := ""
			if e.Flagged {
				flag = "✗"
			}
			fmt.Printf("%7d %-25s %7.1f %9.1f %s\n",
				e.PID, truncate(e.Name, 25), e.CPUPercent, e.WorkingSetMB, flag)
		}

		fmt.Printf("\nPress Ctrl+C to exit | Poll interval: %s\n", cfg.Monitoring.PollInterval)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		notifier.Info("Shutting down...")
		cancel()
	}()

	return scanner.Start(ctx)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

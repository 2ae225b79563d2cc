package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JOBrien987/ProcessRoaster/internal/config"
	"github.com/JOBrien987/ProcessRoaster/internal/monitor"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current system and roaster status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Global

	metrics := monitor.ReadSystemMetrics()

	fmt.Println("╔══════════════════════════════════════════╗")
	fmt.Println("║              ProcessRoaster              ║")
	fmt.Println("╚══════════════════════════════════════════╝")
	fmt.Println()

	// Daemon status
	pidFile := filepath.Join(os.TempDir(), "procroast.pid")
	if data, err := os.ReadFile(pidFile); err == nil {
		fmt.Printf("Daemon:     Running (PID: %s)\n", string(data))
	} else {
		fmt.Println("Daemon:     Not running")
	}
	fmt.Println()

	// System metrics
	fmt.Println("System Metrics:")
	fmt.Printf("  CPU Usage:    %.1f%%\n", metrics.CPUPercent)
	fmt.Printf("  Memory:       %.1f%% (%.0f MB / %.0f MB)\n",
		metrics.MemPercent, metrics.MemUsedMB, metrics.MemTotalMB)
	fmt.Printf("  Cores:        %d\n", metrics.Cores)
	fmt.Println()

	// Config summary
	fmt.Println("Configuration:")
	fmt.Printf("  CPU Threshold:  %.1f%%\n", cfg.Monitoring.CPUThreshold)
	fmt.Printf("  Duration:       %.0fs\n", cfg.Monitoring.DurationSeconds)
	fmt.Printf("  Poll Interval:  %s\n", cfg.Monitoring.PollInterval)
	fmt.Printf("  Top N:          %d\n", cfg.Monitoring.TopN)
	fmt.Printf("  Alert CSV:      %s\n", cfg.Notifications.AlertCSV)
	fmt.Printf("  History:        %v (%s)\n", cfg.History.Enabled, cfg.History.DBPath)
	fmt.Println()

	fmt.Printf("Classifier Keywords: %d configured\n", len(cfg.Classifier.Keywords))

	return nil
}

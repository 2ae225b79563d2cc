package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JOBrien987/ProcessRoaster/internal/config"
	"github.com/JOBrien987/ProcessRoaster/internal/history"
)

var (
	historyLimit int
	historyName  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show persisted overuse alerts",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of alerts to show")
	historyCmd.Flags().StringVar(&historyName, "name", "", "filter by process name substring")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := config.Global

	if !cfg.History.Enabled {
		return fmt.Errorf("alert history is disabled in configuration")
	}

	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	var records []history.AlertRecord
	if historyName != "" {
		records, err = store.ByName(historyName, historyLimit)
	} else {
		records, err = store.Recent(historyLimit)
	}
	if err != nil {
		return fmt.Errorf("reading alert history: %w", err)
	}

	total, err := store.Count()
	if err != nil {
		return fmt.Errorf("counting alerts: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No alerts recorded.")
		return nil
	}

	fmt.Printf("%-20s %7s %-25s %7s %9s\n", "TIMESTAMP", "PID", "NAME", "CPU%", "MEM(MB)")
	for _, r := range records {
		fmt.Printf("%-20s %7d %-25s %7.1f %9.1f\n",
			r.Timestamp.Format("2006-01-02 15:04:05"), r.PID,
			truncate(r.Name, 25), r.CPUPercent, r.WorkingSetMB)
	}
	fmt.Printf("\nShowing %d of %d total alerts.\n", len(records), total)

	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JOBrien987/ProcessRoaster/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "procroast",
	Short: "ProcessRoaster - sustained CPU overuse sentinel",
	Long: `ProcessRoaster samples per-process CPU and memory usage, detects
processes that keep the CPU hot beyond a configured threshold and duration,
and raises alerts: a durable CSV record, a terminal notification, and a row
in the local alert history.

Run 'procroast watch' for the text view, 'procroast top' for the TUI, or
'procroast serve' to expose the summary and alert history over HTTP.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(logsCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.Notifications.Verbose = true
	}
	config.Global = cfg
}

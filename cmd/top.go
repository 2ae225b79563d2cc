package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JOBrien987/ProcessRoaster/internal/config"
	"github.com/JOBrien987/ProcessRoaster/internal/ui"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Launch the interactive TUI",
	Long:  `Launches the interactive terminal UI with the ranked process table, a system header, and a rolling alert panel.`,
	RunE:  runTop,
}

func runTop(cmd *cobra.Command, args []string) error {
	cfg := config.Global

	scanner, _, cleanup, err := buildScanner(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	app := ui.NewApp(cfg, scanner)
	return app.Run()
}

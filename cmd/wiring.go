package cmd

import (
	"fmt"

	"github.com/JOBrien987/ProcessRoaster/internal/config"
	"github.com/JOBrien987/ProcessRoaster/internal/history"
	"github.com/JOBrien987/ProcessRoaster/internal/meta"
	"github.com/JOBrien987/ProcessRoaster/internal/monitor"
	"github.com/JOBrien987/ProcessRoaster/internal/notification"
)

// buildScanner assembles the detection pipeline with its durable sinks: the
// CSV alert log and, when enabled, the SQLite history store. The returned
// cleanup function closes both.
func buildScanner(cfg *config.Config) (*monitor.Scanner, *history.Store, func(), error) {
	tracker := monitor.NewTracker(
		meta.NewSysResolver(),
		monitor.NewClassifier(cfg.Classifier.Keywords),
		monitor.CoreCount(),
	)
	detector := monitor.NewDetector(cfg.Monitoring.CPUThreshold, cfg.Monitoring.DurationSeconds)
	scanner := monitor.NewScanner(
		monitor.NewSysSnapshotter(),
		tracker,
		detector,
		cfg.Monitoring.PollInterval,
		cfg.Monitoring.TopN,
	)

	alertLog, err := notification.NewAlertLog(cfg.Notifications.AlertCSV)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating alert log: %w", err)
	}
	scanner.AddSink(alertLog)

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.DBPath)
		if err != nil {
			alertLog.Close()
			return nil, nil, nil, fmt.Errorf("opening alert history: %w", err)
		}
		scanner.AddSink(store)
	}

	cleanup := func() {
		alertLog.Close()
		if store != nil {
			store.Close()
		}
	}
	return scanner, store, cleanup, nil
}

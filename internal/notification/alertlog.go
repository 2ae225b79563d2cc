package notification

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/JOBrien987/ProcessRoaster/internal/monitor"
)

var alertLogHeader = []string{"Timestamp", "PID", "ProcessName", "CPUPercent", "WorkingSetMB"}

// AlertLog writes an append-only CSV record per alert. The file is created
// with a header line if absent and is never truncated or rewritten.
type AlertLog struct {
	mu   sync.Mutex
	file *os.File
	w    *csv.Writer
}

// NewAlertLog opens (or creates) the CSV alert log at filePath. An empty
// path yields a no-op log.
func NewAlertLog(filePath string) (*AlertLog, error) {
	if filePath == "" {
		return &AlertLog{}, nil
	}

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening alert log: %w", err)
	}

	l := &AlertLog{file: f, w: csv.NewWriter(f)}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("inspecting alert log: %w", err)
	}
	if info.Size() == 0 {
		if err := l.w.Write(alertLogHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing alert log header: %w", err)
		}
		l.w.Flush()
		if err := l.w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing alert log header: %w", err)
		}
	}

	return l, nil
}

// Close closes the underlying file.
func (l *AlertLog) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

// Notify appends one alert record. It implements monitor.AlertSink.
func (l *AlertLog) Notify(ev monitor.AlertEvent) error {
	if l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	record := []string{
		ev.Timestamp.Format(time.RFC3339),
		strconv.FormatInt(int64(ev.PID), 10),
		ev.Name,
		strconv.FormatFloat(ev.CPUPercent, 'f', 1, 64),
		strconv.FormatFloat(ev.WorkingSetMB(), 'f', 1, 64),
	}
	if err := l.w.Write(record); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

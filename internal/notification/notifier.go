package notification

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/JOBrien987/ProcessRoaster/internal/monitor"
)

// Color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// Notifier handles terminal output and file logging.
type Notifier struct {
	mu           sync.Mutex
	logFile      *os.File
	logger       *log.Logger
	colorEnabled bool
	verbose      bool
}

// NewNotifier creates a new notifier.
func NewNotifier(logFilePath string, colorEnabled, verbose bool) (*Notifier, error) {
	n := &Notifier{
		colorEnabled: colorEnabled,
		verbose:      verbose,
	}

	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		n.logFile = f
		n.logger = log.New(f, "", log.LstdFlags)
	}

	return n, nil
}

// Close closes the log file.
func (n *Notifier) Close() {
	if n.logFile != nil {
		n.logFile.Close()
	}
}

// Info logs an informational message.
func (n *Notifier) Info(msg string) {
	n.emit("INFO", colorGreen, msg)
}

// Warn logs a warning message.
func (n *Notifier) Warn(msg string) {
	n.emit("WARN", colorYellow, msg)
}

// Error logs an error message.
func (n *Notifier) Error(msg string) {
	n.emit("ERROR", colorRed, msg)
}

// Debug logs a debug message (only if verbose).
func (n *Notifier) Debug(msg string) {
	if !n.verbose {
		return
	}
	n.emit("DEBUG", colorCyan, msg)
}

func (n *Notifier) emit(level, color, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.colorEnabled {
		fmt.Printf("%s[%s]%s %s\n", color, level, colorReset, msg)
	} else {
		fmt.Printf("[%s] %s\n", level, msg)
	}

	if n.logger != nil {
		n.logger.Printf("[%s] %s", level, msg)
	}
}

// Notify prints a sustained-overuse alert. It implements monitor.AlertSink.
func (n *Notifier) Notify(ev monitor.AlertEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.colorEnabled {
		fmt.Printf("%s[ALERT]%s %s%-20s%s PID=%-7d cpu=%.1f%% mem=%.1fMB sustained over threshold\n",
			colorBold+colorRed, colorReset,
			colorYellow, ev.Name, colorReset,
			ev.PID, ev.CPUPercent, ev.WorkingSetMB())
	} else {
		fmt.Printf("[ALERT] %-20s PID=%-7d cpu=%.1f%% mem=%.1fMB sustained over threshold\n",
			ev.Name, ev.PID, ev.CPUPercent, ev.WorkingSetMB())
	}

	if n.logger != nil {
		n.logger.Printf("[ALERT] %s PID=%d cpu=%.1f%% mem=%.1fMB",
			ev.Name, ev.PID, ev.CPUPercent, ev.WorkingSetMB())
	}
	return nil
}

// FormatTimestamp formats a time for display.
func FormatTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}

package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/JOBrien987/ProcessRoaster/internal/config"
	"github.com/JOBrien987/ProcessRoaster/internal/monitor"
	"github.com/JOBrien987/ProcessRoaster/internal/notification"
)

// App is the interactive TUI: a system header, the ranked process table, and
// a rolling alert panel.
type App struct {
	tapp    *tview.Application
	cfg     *config.Config
	scanner *monitor.Scanner

	header *tview.TextView
	table  *SummaryTable
	alerts *tview.TextView

	mu         sync.Mutex
	alertLines []string

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application around a wired scanner.
func NewApp(cfg *config.Config, scanner *monitor.Scanner) *App {
	a := &App{
		tapp:    tview.NewApplication(),
		cfg:     cfg,
		scanner: scanner,
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.header = tview.NewTextView().SetDynamicColors(true)
	a.header.SetBorder(true).SetTitle(" System ")

	a.table = NewSummaryTable(cfg.Monitoring.CPUThreshold)

	a.alerts = tview.NewTextView().SetDynamicColors(true)
	a.alerts.SetBorder(true).SetTitle(" Alerts ")

	return a
}

// Run starts the scanner in the background and blocks in the TUI event loop.
func (a *App) Run() error {
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 3, 0, false).
		AddItem(a.table.table, 0, 3, true).
		AddItem(a.alerts, 6, 0, false).
		AddItem(a.createFooter(), 1, 0, false)

	a.tapp.SetRoot(mainFlex, true)

	a.tapp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyCtrlC,
			event.Rune() == 'q', event.Rune() == 'Q':
			a.stop()
			return nil
		}
		return event
	})

	a.scanner.AddSink(appSink{a})
	a.scanner.OnUpdate(func(entries []monitor.SummaryEntry, metrics *monitor.SystemMetrics) {
		a.tapp.QueueUpdateDraw(func() {
			a.updateHeader(metrics)
			a.table.Update(entries)
		})
	})

	go a.scanner.Start(a.ctx)

	return a.tapp.Run()
}

func (a *App) updateHeader(m *monitor.SystemMetrics) {
	a.header.SetText(fmt.Sprintf(
		" [yellow]CPU[white] %.1f%%  [yellow]MEM[white] %.1f%% (%.0f/%.0f MB)  [yellow]CORES[white] %d  [yellow]PROCS[white] %d  [yellow]THRESHOLD[white] %.1f%% for %.0fs",
		m.CPUPercent, m.MemPercent, m.MemUsedMB, m.MemTotalMB,
		m.Cores, m.NumProcs,
		a.cfg.Monitoring.CPUThreshold, a.cfg.Monitoring.DurationSeconds))
}

func (a *App) createFooter() *tview.TextView {
	footer := tview.NewTextView().
		SetDynamicColors(true).
		SetText(" [yellow]q[white]:Quit  [yellow]↑/↓[white]:Scroll")
	footer.SetBackgroundColor(tcell.ColorDarkSlateGray)
	return footer
}

func (a *App) stop() {
	a.cancel()
	a.tapp.Stop()
}

// appSink feeds fired alerts into the alert panel. Keeps the last few lines.
type appSink struct {
	app *App
}

func (s appSink) Notify(ev monitor.AlertEvent) error {
	line := fmt.Sprintf("[red]%s[white] %-20s PID=%-7d cpu=%.1f%% mem=%.1fMB",
		notification.FormatTimestamp(ev.Timestamp), ev.Name, ev.PID,
		ev.CPUPercent, ev.WorkingSetMB())

	a := s.app
	a.mu.Lock()
	a.alertLines = append(a.alertLines, line)
	if len(a.alertLines) > 4 {
		a.alertLines = a.alertLines[len(a.alertLines)-4:]
	}
	lines := make([]string, len(a.alertLines))
	copy(lines, a.alertLines)
	a.mu.Unlock()

	a.tapp.QueueUpdateDraw(func() {
		a.alerts.Clear()
		for _, l := range lines {
			fmt.Fprintln(a.alerts, l)
		}
	})
	return nil
}

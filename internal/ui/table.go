package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/JOBrien987/ProcessRoaster/internal/monitor"
)

// SummaryTable displays the ranked summary in an htop-like table.
type SummaryTable struct {
	table     *tview.Table
	threshold float64
}

// NewSummaryTable creates the summary table. threshold controls the CPU
// column's warning color.
func NewSummaryTable(threshold float64) *SummaryTable {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(tview.Borders.Vertical)

	table.SetBorder(true).
		SetTitle(" Processes ").
		SetBorderPadding(0, 0, 0, 0)

	st := &SummaryTable{table: table, threshold: threshold}
	st.setHeaders()
	return st
}

func (st *SummaryTable) setHeaders() {
	headers := []string{"PID", "NAME", "CPU%", "MEM(MB)", "FLAG"}
	for i, h := range headers {
		cell := tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetExpansion(1)
		st.table.SetCell(0, i, cell)
	}
}

// Update refreshes the table with a new cycle's summary.
func (st *SummaryTable) Update(entries []monitor.SummaryEntry) {
	// Clear existing rows (keep header)
	rowCount := st.table.GetRowCount()
	for r := rowCount - 1; r >= 1; r-- {
		st.table.RemoveRow(r)
	}

	for i, e := range entries {
		row := i + 1 // skip header

		cpuColor := tcell.ColorWhite
		if e.CPUPercent >= st.threshold {
			cpuColor = tcell.ColorRed
		} else if e.CPUPercent >= st.threshold/2 {
			cpuColor = tcell.ColorYellow
		}

		nameColor := tcell.ColorGreen
		flag := ""
		if e.Flagged {
			nameColor = tcell.ColorOrange
			flag = "✗"
		}

		st.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", e.PID)).SetTextColor(tcell.ColorWhite))
		st.table.SetCell(row, 1, tview.NewTableCell(truncate(e.Name, 25)).SetTextColor(nameColor))
		st.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%.1f", e.CPUPercent)).SetTextColor(cpuColor))
		st.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%.1f", e.WorkingSetMB)).SetTextColor(tcell.ColorWhite))
		st.table.SetCell(row, 4, tview.NewTableCell(flag).SetTextColor(tcell.ColorOrange))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

package monitor

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemMetrics holds system-wide counters shown alongside the per-process
// summary.
type SystemMetrics struct {
	CPUPercent float64
	MemPercent float64
	MemUsedMB  float64
	MemTotalMB float64
	Cores      int
	NumProcs   int
}

// ReadSystemMetrics reads system-wide CPU and memory counters. Individual
// read failures leave the corresponding fields at zero.
func ReadSystemMetrics() *SystemMetrics {
	m := &SystemMetrics{Cores: CoreCount()}

	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		m.CPUPercent = pcts[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		m.MemPercent = vm.UsedPercent
		m.MemUsedMB = float64(vm.Used) / (1024 * 1024)
		m.MemTotalMB = float64(vm.Total) / (1024 * 1024)
	}

	return m
}

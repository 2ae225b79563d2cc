package monitor

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcSample is one process as observed in a snapshot: its PID, short name,
// cumulative CPU time since the process started, and resident memory.
type ProcSample struct {
	PID     int32
	Name    string
	CPUTime time.Duration
	RSS     uint64
}

// Snapshotter enumerates all currently live processes. A returned error means
// the whole enumeration failed; individual unreadable processes are simply
// left out of the result.
type Snapshotter interface {
	Snapshot() ([]ProcSample, error)
}

// SysSnapshotter reads live processes from the OS.
type SysSnapshotter struct{}

// NewSysSnapshotter creates an OS-backed snapshotter.
func NewSysSnapshotter() *SysSnapshotter {
	return &SysSnapshotter{}
}

// Snapshot enumerates all live processes. Processes that vanish or deny
// access between enumeration and inspection are skipped.
func (s *SysSnapshotter) Snapshot() ([]ProcSample, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("enumerating processes: %w", err)
	}

	samples := make([]ProcSample, 0, len(procs))
	for _, p := range procs {
		times, err := p.Times()
		if err != nil {
			continue
		}
		name, err := p.Name()
		if err != nil {
			continue
		}

		var rss uint64
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			rss = mi.RSS
		}

		cpuSeconds := times.User + times.System
		samples = append(samples, ProcSample{
			PID:     p.Pid,
			Name:    name,
			CPUTime: time.Duration(cpuSeconds * float64(time.Second)),
			RSS:     rss,
		})
	}

	return samples, nil
}

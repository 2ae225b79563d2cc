package monitor

import (
	"time"

	"github.com/JOBrien987/ProcessRoaster/internal/meta"
)

// ResolutionStatus tracks metadata lookup progress for a process.
type ResolutionStatus int

const (
	MetaUnresolved ResolutionStatus = iota
	MetaResolved
)

func (s ResolutionStatus) String() string {
	switch s {
	case MetaUnresolved:
		return "unresolved"
	case MetaResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// ProcessState holds everything tracked for one live PID across scan cycles.
// States are owned exclusively by the Tracker; nothing else mutates them.
type ProcessState struct {
	PID  int32
	Name string

	// CPUPercent is the load computed from the last two samples, normalized
	// by logical core count onto a 0-100 scale. Zero until two samples exist.
	CPUPercent float64

	// RSS is the most recent resident-memory sample in bytes.
	RSS uint64

	// OveruseSeconds counts consecutive wall-clock seconds at or above the
	// CPU threshold. The detector resets it the moment the percent drops
	// below threshold, and again immediately after an alert fires.
	OveruseSeconds float64

	Meta       meta.Metadata
	MetaStatus ResolutionStatus
	Flagged    bool

	lastCPUTime time.Duration
	lastSample  time.Time
	samples     int
}

// Ready reports whether two consecutive samples exist, i.e. whether
// CPUPercent is meaningful and overuse detection may run.
func (s *ProcessState) Ready() bool {
	return s.samples >= 2
}

// WorkingSetMB converts the resident-memory sample to megabytes.
func (s *ProcessState) WorkingSetMB() float64 {
	return float64(s.RSS) / (1024 * 1024)
}

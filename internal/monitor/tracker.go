package monitor

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/JOBrien987/ProcessRoaster/internal/meta"
)

// Tracker owns one ProcessState per live PID and folds snapshot samples into
// them cycle after cycle. All access happens from the scan cycle's goroutine.
type Tracker struct {
	states     map[int32]*ProcessState
	resolver   meta.Resolver
	classifier *Classifier
	coreCount  int
}

// NewTracker creates a tracker. coreCount normalizes multi-core cumulative
// CPU time onto a 0-100 scale; values below 1 are treated as 1.
func NewTracker(resolver meta.Resolver, classifier *Classifier, coreCount int) *Tracker {
	if coreCount < 1 {
		coreCount = 1
	}
	return &Tracker{
		states:     make(map[int32]*ProcessState),
		resolver:   resolver,
		classifier: classifier,
		coreCount:  coreCount,
	}
}

// CoreCount returns the number of logical processors, read once at startup.
func CoreCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Update folds one snapshot sample into the tracked state for its PID and
// returns the state plus the elapsed wall-clock seconds used for the percent
// computation. The elapsed time is 0 on first sighting and on clock anomalies
// (duplicate or backwards timestamps), in which case no percent was computed
// this cycle.
func (t *Tracker) Update(s ProcSample, now time.Time) (*ProcessState, float64) {
	st, ok := t.states[s.PID]
	if !ok {
		st = &ProcessState{
			PID:         s.PID,
			Name:        s.Name,
			RSS:         s.RSS,
			lastCPUTime: s.CPUTime,
			lastSample:  now,
			samples:     1,
		}
		t.resolve(st)
		t.states[s.PID] = st
		return st, 0
	}

	// Name and memory refresh even when the percent computation is skipped.
	st.Name = s.Name
	st.RSS = s.RSS

	wall := now.Sub(st.lastSample).Seconds()
	if wall <= 0 {
		return st, 0
	}

	cpuDelta := (s.CPUTime - st.lastCPUTime).Seconds()
	if cpuDelta < 0 {
		cpuDelta = 0
	}

	st.CPUPercent = cpuDelta / wall * 100 / float64(t.coreCount)
	st.lastCPUTime = s.CPUTime
	st.lastSample = now
	st.samples++

	if st.MetaStatus == MetaUnresolved {
		t.resolve(st)
	}

	return st, wall
}

// resolve attempts a metadata lookup and classification. Failure leaves the
// state untouched; the lookup is retried on the next cycle.
func (t *Tracker) resolve(st *ProcessState) {
	m, err := t.resolver.Resolve(st.PID)
	if err != nil {
		return
	}
	st.Meta = m
	st.MetaStatus = MetaResolved
	st.Flagged = t.classifier.Match(st.Name, m)
}

// Evict removes every tracked PID absent from seen. The OS recycles PIDs, so
// a stale entry surviving into a cycle where its PID belongs to an unrelated
// process would corrupt that process's delta computation.
func (t *Tracker) Evict(seen map[int32]bool) {
	for pid := range t.states {
		if !seen[pid] {
			delete(t.states, pid)
		}
	}
}

// States returns the currently tracked states in map order.
func (t *Tracker) States() []*ProcessState {
	out := make([]*ProcessState, 0, len(t.states))
	for _, st := range t.states {
		out = append(out, st)
	}
	return out
}

// Len returns the number of tracked processes.
func (t *Tracker) Len() int {
	return len(t.states)
}

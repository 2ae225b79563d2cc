package monitor

import (
	"context"
	"sort"
	"sync"
	"time"
)

// SummaryEntry is one row of the per-cycle ranked view.
type SummaryEntry struct {
	Name         string  `json:"name"`
	PID          int32   `json:"pid"`
	CPUPercent   float64 `json:"cpu_percent"`
	WorkingSetMB float64 `json:"working_set_mb"`
	Flagged      bool    `json:"flagged"`
}

// AlertSink receives fired alerts. Delivery is best effort: a sink error
// never rolls back or retries the detector's state transition.
type AlertSink interface {
	Notify(AlertEvent) error
}

// Scanner drives the polling loop: one snapshot, per-process update and
// detection, eviction of vanished PIDs, then a ranked summary. Cycles never
// overlap; the tracker is touched only from the scan goroutine.
type Scanner struct {
	snap     Snapshotter
	tracker  *Tracker
	detector *Detector
	interval time.Duration
	topN     int
	sinks    []AlertSink

	mu       sync.RWMutex
	summary  []SummaryEntry
	metrics  *SystemMetrics
	onUpdate func([]SummaryEntry, *SystemMetrics)
}

// NewScanner creates a scanner polling at the given interval and keeping the
// top topN entries in its summary.
func NewScanner(snap Snapshotter, tracker *Tracker, detector *Detector, interval time.Duration, topN int) *Scanner {
	return &Scanner{
		snap:     snap,
		tracker:  tracker,
		detector: detector,
		interval: interval,
		topN:     topN,
		metrics:  &SystemMetrics{},
	}
}

// AddSink registers an alert sink. Call before Start.
func (s *Scanner) AddSink(sink AlertSink) {
	s.sinks = append(s.sinks, sink)
}

// OnUpdate sets a callback invoked after each completed cycle.
func (s *Scanner) OnUpdate(fn func([]SummaryEntry, *SystemMetrics)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

// Start runs the scan loop until the context is cancelled. An initial cycle
// runs immediately so the first tick already has deltas to work with.
func (s *Scanner) Start(ctx context.Context) error {
	s.RunCycle(time.Now())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.RunCycle(time.Now())
		}
	}
}

// RunCycle executes one full scan cycle at the given timestamp. A wholesale
// snapshot failure skips the cycle and leaves all tracked state unchanged;
// the next scheduled cycle simply retries.
func (s *Scanner) RunCycle(now time.Time) {
	samples, err := s.snap.Snapshot()
	if err != nil {
		return
	}

	seen := make(map[int32]bool, len(samples))
	var alerts []AlertEvent

	for _, sample := range samples {
		seen[sample.PID] = true
		st, wall := s.tracker.Update(sample, now)
		if ev := s.detector.Check(st, wall, now); ev != nil {
			alerts = append(alerts, *ev)
		}
	}

	// Evict before producing output so a recycled PID can never inherit a
	// dead process's counters.
	s.tracker.Evict(seen)

	summary := s.buildSummary()
	metrics := ReadSystemMetrics()
	metrics.NumProcs = s.tracker.Len()

	s.mu.Lock()
	s.summary = summary
	s.metrics = metrics
	callback := s.onUpdate
	s.mu.Unlock()

	for _, ev := range alerts {
		for _, sink := range s.sinks {
			_ = sink.Notify(ev)
		}
	}

	if callback != nil {
		callback(summary, metrics)
	}
}

// buildSummary ranks tracked processes by CPU percent descending, capped at
// topN. Zero-percent entries are excluded: they are either still waiting for
// their second sample or fully idle, and neither belongs in a hot list.
func (s *Scanner) buildSummary() []SummaryEntry {
	states := s.tracker.States()

	entries := make([]SummaryEntry, 0, len(states))
	for _, st := range states {
		if !st.Ready() || st.CPUPercent == 0 {
			continue
		}
		entries = append(entries, SummaryEntry{
			Name:         st.Name,
			PID:          st.PID,
			CPUPercent:   st.CPUPercent,
			WorkingSetMB: st.WorkingSetMB(),
			Flagged:      st.Flagged,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CPUPercent > entries[j].CPUPercent
	})

	if len(entries) > s.topN {
		entries = entries[:s.topN]
	}
	return entries
}

// Summary returns the most recent cycle's ranked view.
func (s *Scanner) Summary() []SummaryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SummaryEntry, len(s.summary))
	copy(out, s.summary)
	return out
}

// Metrics returns the most recent cycle's system-wide counters.
func (s *Scanner) Metrics() *SystemMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

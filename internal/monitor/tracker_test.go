package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/JOBrien987/ProcessRoaster/internal/meta"
)

type stubResolver struct {
	meta  meta.Metadata
	err   error
	calls int
}

func (r *stubResolver) Resolve(pid int32) (meta.Metadata, error) {
	r.calls++
	if r.err != nil {
		return meta.Metadata{}, r.err
	}
	return r.meta, nil
}

func newTestTracker(res meta.Resolver, cores int, keywords ...string) *Tracker {
	return NewTracker(res, NewClassifier(keywords), cores)
}

func TestTrackerFirstSampleNoPercent(t *testing.T) {
	tr := newTestTracker(&stubResolver{}, 1)
	now := time.Now()

	st, wall := tr.Update(ProcSample{PID: 42, Name: "worker", CPUTime: 5 * time.Second, RSS: 1024}, now)

	if wall != 0 {
		t.Errorf("expected zero wall delta on first sample, got %f", wall)
	}
	if st.Ready() {
		t.Error("state should not be ready after a single sample")
	}
	if st.CPUPercent != 0 {
		t.Errorf("expected zero percent on first sample, got %f", st.CPUPercent)
	}
	if tr.Len() != 1 {
		t.Errorf("expected 1 tracked process, got %d", tr.Len())
	}
}

func TestTrackerPercentFormula(t *testing.T) {
	tests := []struct {
		name     string
		cores    int
		cpuDelta time.Duration
		wall     time.Duration
		want     float64
	}{
		{"half a core of one", 1, time.Second, 2 * time.Second, 50.0},
		{"normalized by two cores", 2, time.Second, 2 * time.Second, 25.0},
		{"idle process", 4, 0, 2 * time.Second, 0.0},
		{"fully busy one core of four", 4, 2 * time.Second, 2 * time.Second, 25.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTracker(&stubResolver{}, tt.cores)
			t0 := time.Now()

			tr.Update(ProcSample{PID: 1, Name: "p", CPUTime: 10 * time.Second}, t0)
			st, wall := tr.Update(ProcSample{PID: 1, Name: "p", CPUTime: 10*time.Second + tt.cpuDelta}, t0.Add(tt.wall))

			if wall != tt.wall.Seconds() {
				t.Errorf("wall delta = %f, want %f", wall, tt.wall.Seconds())
			}
			if !st.Ready() {
				t.Fatal("state should be ready after two samples")
			}
			if diff := st.CPUPercent - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("CPUPercent = %f, want %f", st.CPUPercent, tt.want)
			}
		})
	}
}

func TestTrackerPercentNeverNegative(t *testing.T) {
	tr := newTestTracker(&stubResolver{}, 1)
	t0 := time.Now()

	tr.Update(ProcSample{PID: 1, Name: "p", CPUTime: 10 * time.Second}, t0)
	st, _ := tr.Update(ProcSample{PID: 1, Name: "p", CPUTime: 8 * time.Second}, t0.Add(2*time.Second))

	if st.CPUPercent < 0 {
		t.Errorf("CPUPercent must never be negative, got %f", st.CPUPercent)
	}
}

func TestTrackerClockAnomalySkipsComputation(t *testing.T) {
	tr := newTestTracker(&stubResolver{}, 1)
	t0 := time.Now()

	tr.Update(ProcSample{PID: 1, Name: "p", CPUTime: 0, RSS: 100}, t0)
	st, _ := tr.Update(ProcSample{PID: 1, Name: "p", CPUTime: time.Second, RSS: 200}, t0.Add(2*time.Second))
	if st.CPUPercent != 50.0 {
		t.Fatalf("setup: CPUPercent = %f, want 50", st.CPUPercent)
	}

	// Duplicate timestamp: no division, percent untouched, memory refreshed.
	st, wall := tr.Update(ProcSample{PID: 1, Name: "renamed", CPUTime: 2 * time.Second, RSS: 300}, t0.Add(2*time.Second))
	if wall != 0 {
		t.Errorf("expected zero wall delta for duplicate timestamp, got %f", wall)
	}
	if st.CPUPercent != 50.0 {
		t.Errorf("CPUPercent changed on clock anomaly: %f", st.CPUPercent)
	}
	if st.RSS != 300 {
		t.Errorf("RSS not refreshed on clock anomaly: %d", st.RSS)
	}
	if st.Name != "renamed" {
		t.Errorf("name not refreshed on clock anomaly: %s", st.Name)
	}

	// Backwards timestamp behaves the same.
	_, wall = tr.Update(ProcSample{PID: 1, Name: "renamed", CPUTime: 3 * time.Second}, t0.Add(time.Second))
	if wall != 0 {
		t.Errorf("expected zero wall delta for backwards timestamp, got %f", wall)
	}
}

func TestTrackerEvictionAndPIDReuse(t *testing.T) {
	tr := newTestTracker(&stubResolver{}, 1)
	t0 := time.Now()

	tr.Update(ProcSample{PID: 7, Name: "old", CPUTime: 100 * time.Second}, t0)
	tr.Update(ProcSample{PID: 7, Name: "old", CPUTime: 101 * time.Second}, t0.Add(2*time.Second))
	tr.Update(ProcSample{PID: 8, Name: "other", CPUTime: 0}, t0.Add(2*time.Second))

	tr.Evict(map[int32]bool{8: true})
	if tr.Len() != 1 {
		t.Fatalf("expected 1 tracked process after eviction, got %d", tr.Len())
	}

	// The OS hands PID 7 to an unrelated process: brand-new identity, no
	// percent computed from the dead process's counters.
	st, wall := tr.Update(ProcSample{PID: 7, Name: "new", CPUTime: time.Second}, t0.Add(4*time.Second))
	if wall != 0 {
		t.Errorf("reused PID must be treated as first sighting, got wall %f", wall)
	}
	if st.Ready() {
		t.Error("reused PID state should not be ready")
	}
}

func TestTrackerMetadataResolutionRetry(t *testing.T) {
	res := &stubResolver{err: errors.New("access denied")}
	tr := newTestTracker(res, 1, "chromium")
	t0 := time.Now()

	st, _ := tr.Update(ProcSample{PID: 1, Name: "browser", CPUTime: 0}, t0)
	if st.MetaStatus != MetaUnresolved {
		t.Fatal("resolution should have failed")
	}

	// Lookup starts succeeding; the next cycle picks it up and classifies.
	res.err = nil
	res.meta = meta.Metadata{Path: "/opt/chromium/chrome", Publisher: "alice"}

	st, _ = tr.Update(ProcSample{PID: 1, Name: "browser", CPUTime: time.Second}, t0.Add(2*time.Second))
	if st.MetaStatus != MetaResolved {
		t.Fatal("resolution should have succeeded on retry")
	}
	if st.Meta.Path != "/opt/chromium/chrome" {
		t.Errorf("unexpected path: %s", st.Meta.Path)
	}
	if !st.Flagged {
		t.Error("expected process to be flagged by keyword match")
	}

	// Once resolved, no further lookups happen.
	calls := res.calls
	tr.Update(ProcSample{PID: 1, Name: "browser", CPUTime: 2 * time.Second}, t0.Add(4*time.Second))
	if res.calls != calls {
		t.Errorf("resolver called again after successful resolution: %d -> %d", calls, res.calls)
	}
}

func TestTrackerFailedResolutionKeepsPreviousMetadata(t *testing.T) {
	res := &stubResolver{meta: meta.Metadata{Path: "/usr/bin/tool"}}
	tr := newTestTracker(res, 1)
	t0 := time.Now()

	st, _ := tr.Update(ProcSample{PID: 1, Name: "tool", CPUTime: 0}, t0)
	if st.Meta.Path != "/usr/bin/tool" {
		t.Fatalf("setup: resolution failed, path %q", st.Meta.Path)
	}

	// A later failure must never overwrite a successful resolution.
	res.err = errors.New("process vanished")
	st, _ = tr.Update(ProcSample{PID: 1, Name: "tool", CPUTime: time.Second}, t0.Add(2*time.Second))
	if st.Meta.Path != "/usr/bin/tool" {
		t.Errorf("previously resolved metadata was lost: %q", st.Meta.Path)
	}
	if st.MetaStatus != MetaResolved {
		t.Error("resolution status regressed")
	}
}

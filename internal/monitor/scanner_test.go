package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/JOBrien987/ProcessRoaster/internal/meta"
)

type fakeSnap struct {
	samples []ProcSample
	err     error
}

func (f *fakeSnap) Snapshot() ([]ProcSample, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]ProcSample, len(f.samples))
	copy(out, f.samples)
	return out, nil
}

type captureSink struct {
	events []AlertEvent
}

func (c *captureSink) Notify(ev AlertEvent) error {
	c.events = append(c.events, ev)
	return nil
}

type failingSink struct{ calls int }

func (f *failingSink) Notify(AlertEvent) error {
	f.calls++
	return errors.New("sink broken")
}

func newTestScanner(snap Snapshotter, threshold, duration float64, topN int) *Scanner {
	tracker := NewTracker(&stubResolver{meta: meta.Metadata{Path: "/bin/x"}}, NewClassifier(nil), 1)
	return NewScanner(snap, tracker, NewDetector(threshold, duration), 2*time.Second, topN)
}

func TestScannerSummaryRankingAndExclusions(t *testing.T) {
	snap := &fakeSnap{samples: []ProcSample{
		{PID: 1, Name: "busy", CPUTime: 0, RSS: 10 << 20},
		{PID: 2, Name: "lazy", CPUTime: 0, RSS: 20 << 20},
	}}
	s := newTestScanner(snap, 90.0, 10.0, 30)
	t0 := time.Now()

	s.RunCycle(t0)
	if got := s.Summary(); len(got) != 0 {
		t.Fatalf("summary after first cycle should be empty, got %d entries", len(got))
	}

	snap.samples = []ProcSample{
		{PID: 1, Name: "busy", CPUTime: time.Second, RSS: 10 << 20},
		{PID: 2, Name: "lazy", CPUTime: 200 * time.Millisecond, RSS: 20 << 20},
		{PID: 3, Name: "newcomer", CPUTime: 5 * time.Second, RSS: 30 << 20},
	}
	s.RunCycle(t0.Add(2 * time.Second))

	got := s.Summary()
	if len(got) != 2 {
		t.Fatalf("expected 2 ready entries (newcomer excluded), got %d", len(got))
	}
	if got[0].Name != "busy" || got[1].Name != "lazy" {
		t.Errorf("summary not ranked by CPU desc: %s, %s", got[0].Name, got[1].Name)
	}
	if got[0].CPUPercent != 50.0 {
		t.Errorf("busy CPUPercent = %f, want 50", got[0].CPUPercent)
	}
	if got[1].CPUPercent != 10.0 {
		t.Errorf("lazy CPUPercent = %f, want 10", got[1].CPUPercent)
	}
}

func TestScannerTopNCap(t *testing.T) {
	snap := &fakeSnap{}
	for i := int32(1); i <= 5; i++ {
		snap.samples = append(snap.samples, ProcSample{PID: i, Name: "p", CPUTime: 0})
	}
	s := newTestScanner(snap, 90.0, 10.0, 3)
	t0 := time.Now()

	s.RunCycle(t0)
	for i := range snap.samples {
		snap.samples[i].CPUTime = time.Second
	}
	s.RunCycle(t0.Add(2 * time.Second))

	if got := s.Summary(); len(got) != 3 {
		t.Errorf("expected summary capped at 3, got %d", len(got))
	}
}

func TestScannerSnapshotFailureSkipsCycle(t *testing.T) {
	snap := &fakeSnap{samples: []ProcSample{{PID: 1, Name: "p", CPUTime: 0}}}
	s := newTestScanner(snap, 90.0, 10.0, 30)
	t0 := time.Now()

	s.RunCycle(t0)
	snap.samples = []ProcSample{{PID: 1, Name: "p", CPUTime: time.Second}}
	s.RunCycle(t0.Add(2 * time.Second))

	// Cycle 3 fails wholesale: state retained, nothing evicted.
	snap.err = errors.New("enumeration failed")
	s.RunCycle(t0.Add(4 * time.Second))
	if s.tracker.Len() != 1 {
		t.Fatalf("tracked set changed on failed cycle: %d", s.tracker.Len())
	}

	// Cycle 4 succeeds; the delta spans the gap, exactly as if cycle 3 had
	// never been scheduled.
	snap.err = nil
	snap.samples = []ProcSample{{PID: 1, Name: "p", CPUTime: 2 * time.Second}}
	s.RunCycle(t0.Add(6 * time.Second))

	got := s.Summary()
	if len(got) != 1 {
		t.Fatalf("expected 1 summary entry, got %d", len(got))
	}
	// 1s of CPU over the 4s gap = 25%.
	if got[0].CPUPercent != 25.0 {
		t.Errorf("CPUPercent = %f, want 25", got[0].CPUPercent)
	}
}

func TestScannerEvictsVanishedPIDs(t *testing.T) {
	snap := &fakeSnap{samples: []ProcSample{
		{PID: 1, Name: "a", CPUTime: 0},
		{PID: 2, Name: "b", CPUTime: 0},
	}}
	s := newTestScanner(snap, 90.0, 10.0, 30)
	t0 := time.Now()

	s.RunCycle(t0)
	if s.tracker.Len() != 2 {
		t.Fatalf("expected 2 tracked, got %d", s.tracker.Len())
	}

	snap.samples = []ProcSample{{PID: 2, Name: "b", CPUTime: time.Second}}
	s.RunCycle(t0.Add(2 * time.Second))
	if s.tracker.Len() != 1 {
		t.Errorf("expected vanished PID evicted, tracked = %d", s.tracker.Len())
	}
}

func TestScannerAlertDeliveryIsBestEffort(t *testing.T) {
	snap := &fakeSnap{samples: []ProcSample{{PID: 1, Name: "hog", CPUTime: 0}}}
	s := newTestScanner(snap, 20.0, 4.0, 30)

	broken := &failingSink{}
	capture := &captureSink{}
	s.AddSink(broken)
	s.AddSink(capture)

	t0 := time.Now()
	s.RunCycle(t0)
	for i := 1; i <= 3; i++ {
		snap.samples[0].CPUTime = time.Duration(i) * time.Second // 50% per cycle
		s.RunCycle(t0.Add(time.Duration(i) * 2 * time.Second))
	}

	if len(capture.events) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(capture.events))
	}
	if broken.calls != 1 {
		t.Errorf("failing sink should still have been offered the alert once, got %d", broken.calls)
	}
	ev := capture.events[0]
	if ev.PID != 1 || ev.Name != "hog" || ev.CPUPercent != 50.0 {
		t.Errorf("unexpected alert event: %+v", ev)
	}
}

func TestScannerOnUpdateCallback(t *testing.T) {
	snap := &fakeSnap{samples: []ProcSample{{PID: 1, Name: "p", CPUTime: 0}}}
	s := newTestScanner(snap, 90.0, 10.0, 30)

	var calls int
	var lastMetrics *SystemMetrics
	s.OnUpdate(func(entries []SummaryEntry, metrics *SystemMetrics) {
		calls++
		lastMetrics = metrics
	})

	s.RunCycle(time.Now())
	if calls != 1 {
		t.Fatalf("expected 1 callback invocation, got %d", calls)
	}
	if lastMetrics == nil || lastMetrics.NumProcs != 1 {
		t.Errorf("callback metrics missing tracked process count: %+v", lastMetrics)
	}
}

package monitor

import "time"

// AlertEvent is emitted when a process has sustained CPU load at or above the
// threshold for the full configured window.
type AlertEvent struct {
	PID        int32
	Name       string
	CPUPercent float64
	RSS        uint64
	Timestamp  time.Time
}

// WorkingSetMB converts the event's resident-memory sample to megabytes.
func (e AlertEvent) WorkingSetMB() float64 {
	return float64(e.RSS) / (1024 * 1024)
}

// Detector accumulates per-process overuse time and fires at most one alert
// per window. A single cycle's instantaneous percent can never fire on its
// own; the cumulative sustained condition must be met.
type Detector struct {
	threshold float64
	duration  float64
}

// NewDetector creates a detector firing when a process stays at or above
// thresholdPercent for durationSeconds of accumulated wall-clock time.
func NewDetector(thresholdPercent, durationSeconds float64) *Detector {
	return &Detector{threshold: thresholdPercent, duration: durationSeconds}
}

// Check folds one cycle's reading into the state's overuse accumulator and
// returns an alert if the window filled. wallDelta is the elapsed wall-clock
// seconds the Tracker used for this cycle's percent; 0 means no percent was
// computed and the accumulator is left alone. The accumulator resets to zero
// both when the percent drops below threshold and immediately after an alert
// fires, so a still-hot process re-accumulates a fresh full window before it
// can alert again.
func (d *Detector) Check(st *ProcessState, wallDelta float64, now time.Time) *AlertEvent {
	if wallDelta <= 0 || !st.Ready() {
		return nil
	}

	if st.CPUPercent < d.threshold {
		st.OveruseSeconds = 0
		return nil
	}

	st.OveruseSeconds += wallDelta
	if st.OveruseSeconds < d.duration {
		return nil
	}

	st.OveruseSeconds = 0
	return &AlertEvent{
		PID:        st.PID,
		Name:       st.Name,
		CPUPercent: st.CPUPercent,
		RSS:        st.RSS,
		Timestamp:  now,
	}
}

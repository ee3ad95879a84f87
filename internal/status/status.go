// Package status provides a thread-safe status tracker for the glove daemon.
// It is the diagnostic sink for sensor frames and is read by the HTTP status
// handlers during field calibration.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/glove-controller/internal/conn"
	"github.com/sweeney/glove-controller/internal/gesture"
)

// Config contains daemon configuration for display.
type Config struct {
	SampleMs    int64
	DebounceMs  int64
	LinkRetryMs int64
	BackoffMs   int64
	Broker      string
	Topic       string
	HTTPAddr    string
	FistMax     int
	OpenMin     int
	Tilt        float64
}

// Counts tracks per-gesture publishes and failure totals since startup.
type Counts struct {
	Fist            int
	OpenHand        int
	Left            int
	Right           int
	PublishFailures int
	ReadErrors      int
	Dropped         int // gestures classified while connectivity was not ready
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	LastFrame   gesture.Frame
	HaveFrame   bool
	LastGesture gesture.Gesture
	Frames      int64
	Counts      Counts
	Link        conn.LinkState
	Session     conn.SessionState
	StartTime   time.Time
	Now         time.Time
	Config      Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// RecordFrame stores the latest frame and classification. Called every tick.
func (t *Tracker) RecordFrame(f gesture.Frame, g gesture.Gesture) {
	t.mu.Lock()
	t.snap.LastFrame = f
	t.snap.HaveFrame = true
	t.snap.LastGesture = g
	t.snap.Frames++
	t.mu.Unlock()
}

// RecordPublished counts a successfully published gesture.
func (t *Tracker) RecordPublished(g gesture.Gesture) {
	t.mu.Lock()
	switch g {
	case gesture.Fist:
		t.snap.Counts.Fist++
	case gesture.OpenHand:
		t.snap.Counts.OpenHand++
	case gesture.Left:
		t.snap.Counts.Left++
	case gesture.Right:
		t.snap.Counts.Right++
	}
	t.mu.Unlock()
}

// RecordPublishFailure counts a failed transmission.
func (t *Tracker) RecordPublishFailure() {
	t.mu.Lock()
	t.snap.Counts.PublishFailures++
	t.mu.Unlock()
}

// RecordReadError counts a tick whose frame could not be acquired.
func (t *Tracker) RecordReadError() {
	t.mu.Lock()
	t.snap.Counts.ReadErrors++
	t.mu.Unlock()
}

// RecordDropped counts a gesture discarded because connectivity was not
// ready.
func (t *Tracker) RecordDropped() {
	t.mu.Lock()
	t.snap.Counts.Dropped++
	t.mu.Unlock()
}

// SetConnectivity stores the supervisor's current states.
func (t *Tracker) SetConnectivity(link conn.LinkState, session conn.SessionState) {
	t.mu.Lock()
	t.snap.Link = link
	t.snap.Session = session
	t.mu.Unlock()
}

// Snapshot returns a copy of the current state with Now set.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	snap := t.snap
	t.mu.RUnlock()
	snap.Now = time.Now()
	return snap
}

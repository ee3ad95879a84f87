package status

import (
	"testing"
	"time"

	"github.com/sweeney/glove-controller/internal/conn"
	"github.com/sweeney/glove-controller/internal/gesture"
)

func newTestTracker() *Tracker {
	return NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Config{
		SampleMs: 500,
		Broker:   "tcp://10.0.0.5:1883",
		Topic:    "robotic_arm/commands",
	})
}

func TestTrackerRecordFrame(t *testing.T) {
	tr := newTestTracker()

	f := gesture.Frame{Flex1: 100, Flex2: 100, AccelZ: 9.8, Touch1: true}
	tr.RecordFrame(f, gesture.Fist)
	tr.RecordFrame(f, gesture.Fist)

	snap := tr.Snapshot()
	if !snap.HaveFrame {
		t.Error("expected HaveFrame after recording")
	}
	if snap.LastGesture != gesture.Fist {
		t.Errorf("last gesture: got %s", snap.LastGesture)
	}
	if snap.Frames != 2 {
		t.Errorf("frames: got %d, want 2", snap.Frames)
	}
	if snap.LastFrame.Flex1 != 100 {
		t.Errorf("last frame flex1: got %d", snap.LastFrame.Flex1)
	}
}

func TestTrackerCounts(t *testing.T) {
	tr := newTestTracker()

	tr.RecordPublished(gesture.Fist)
	tr.RecordPublished(gesture.Fist)
	tr.RecordPublished(gesture.Left)
	tr.RecordPublishFailure()
	tr.RecordReadError()
	tr.RecordDropped()

	c := tr.Snapshot().Counts
	if c.Fist != 2 || c.OpenHand != 0 || c.Left != 1 || c.Right != 0 {
		t.Errorf("gesture counts: %+v", c)
	}
	if c.PublishFailures != 1 || c.ReadErrors != 1 || c.Dropped != 1 {
		t.Errorf("failure counts: %+v", c)
	}
}

func TestTrackerConnectivity(t *testing.T) {
	tr := newTestTracker()

	tr.SetConnectivity(conn.LinkUp, conn.SessionConnected)
	snap := tr.Snapshot()
	if snap.Link != conn.LinkUp || snap.Session != conn.SessionConnected {
		t.Errorf("connectivity: got %s/%s", snap.Link, snap.Session)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tr := newTestTracker()
	snap1 := tr.Snapshot()
	tr.RecordPublished(gesture.Right)
	if snap1.Counts.Right != 0 {
		t.Error("snapshot should not see later mutations")
	}
}

func TestSnapshotUptime(t *testing.T) {
	tr := newTestTracker()
	snap := tr.Snapshot()
	snap.Now = snap.StartTime.Add(90 * time.Second)
	if snap.Uptime() != 90*time.Second {
		t.Errorf("uptime: got %v", snap.Uptime())
	}
}

func TestTrackerConcurrentAccess(t *testing.T) {
	tr := newTestTracker()
	done := make(chan struct{})

	go func() {
		for i := 0; i < 1000; i++ {
			tr.RecordFrame(gesture.Frame{}, gesture.None)
			tr.RecordPublished(gesture.Fist)
		}
		close(done)
	}()
	for i := 0; i < 1000; i++ {
		_ = tr.Snapshot()
	}
	<-done
}

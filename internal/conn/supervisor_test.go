package conn

import (
	"errors"
	"testing"
	"time"
)

// newTestSupervisor returns a supervisor whose sleeps are recorded instead of
// performed.
func newTestSupervisor(tr Transport) (*Supervisor, *[]time.Duration) {
	s := NewSupervisor(tr, "glove-test", 500*time.Millisecond, 2*time.Second)
	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	return s, &slept
}

func TestSupervisorHappyPath(t *testing.T) {
	tr := &FakeTransport{}
	s, slept := newTestSupervisor(tr)

	if !s.EnsureReady() {
		t.Fatal("expected ready after associate and connect succeed")
	}
	link, session := s.States()
	if link != LinkUp {
		t.Errorf("link: got %s, want UP", link)
	}
	if session != SessionConnected {
		t.Errorf("session: got %s, want CONNECTED", session)
	}
	if len(*slept) != 0 {
		t.Errorf("expected no sleeps, got %v", *slept)
	}
	if tr.SessionIDs[0] != "glove-test" {
		t.Errorf("session id: got %q", tr.SessionIDs[0])
	}
}

func TestSupervisorAssociateFailureRetries(t *testing.T) {
	tr := &FakeTransport{AssociateErr: errors.New("no carrier")}
	s, slept := newTestSupervisor(tr)

	if s.EnsureReady() {
		t.Fatal("expected not ready while association fails")
	}
	if _, session := s.States(); session != SessionDisconnected {
		t.Errorf("session: got %s, want DISCONNECTED", session)
	}
	if tr.OpenCalls != 0 {
		t.Error("no session attempt should happen while the link is down")
	}
	if len(*slept) != 1 || (*slept)[0] != 500*time.Millisecond {
		t.Errorf("expected one 500ms retry wait, got %v", *slept)
	}

	// Link comes back: the next tick recovers fully.
	tr.AssociateErr = nil
	if !s.EnsureReady() {
		t.Fatal("expected ready once association succeeds")
	}
}

func TestSupervisorSessionFailureBacksOff(t *testing.T) {
	tr := &FakeTransport{OpenErr: errors.New("broker refused")}
	s, slept := newTestSupervisor(tr)

	if s.EnsureReady() {
		t.Fatal("expected not ready while session connect fails")
	}
	link, session := s.States()
	if link != LinkUp {
		t.Errorf("link: got %s, want UP", link)
	}
	if session != SessionDisconnected {
		t.Errorf("session: got %s, want DISCONNECTED after failed attempt", session)
	}
	if len(*slept) != 1 || (*slept)[0] != 2*time.Second {
		t.Errorf("expected one 2s backoff, got %v", *slept)
	}

	tr.OpenErr = nil
	if !s.EnsureReady() {
		t.Fatal("expected ready on retry tick")
	}
	if tr.OpenCalls != 2 {
		t.Errorf("expected 2 connect attempts, got %d", tr.OpenCalls)
	}
}

// TestSupervisorOneWaitPerTick verifies a tick never blocks for more than one
// retry wait, however long the outage.
func TestSupervisorOneWaitPerTick(t *testing.T) {
	tr := &FakeTransport{AssociateErr: errors.New("no carrier")}
	s, slept := newTestSupervisor(tr)

	for i := 0; i < 10; i++ {
		before := len(*slept)
		s.EnsureReady()
		if waits := len(*slept) - before; waits > 1 {
			t.Fatalf("tick %d: %d waits in one call", i, waits)
		}
	}
}

// TestSupervisorNeverConnectedWithLinkDown verifies the session invariant.
func TestSupervisorNeverConnectedWithLinkDown(t *testing.T) {
	tr := &FakeTransport{AssociateErr: errors.New("no carrier")}
	s, _ := newTestSupervisor(tr)

	for i := 0; i < 5; i++ {
		s.EnsureReady()
		link, session := s.States()
		if link == LinkDown && session != SessionDisconnected {
			t.Fatalf("tick %d: session %s while link DOWN", i, session)
		}
	}
}

func TestSupervisorLinkLossForcesSessionDown(t *testing.T) {
	tr := &FakeTransport{}
	s, _ := newTestSupervisor(tr)

	if !s.EnsureReady() {
		t.Fatal("expected ready")
	}

	// Simulate asynchronous link loss; keep association failing so the
	// forced-down states are observable.
	tr.Link = false
	tr.AssociateErr = errors.New("no carrier")
	if s.EnsureReady() {
		t.Fatal("expected not ready after link loss")
	}
	link, session := s.States()
	if link != LinkDown {
		t.Errorf("link: got %s, want DOWN", link)
	}
	if session != SessionDisconnected {
		t.Errorf("session: got %s, want DISCONNECTED after link loss", session)
	}

	// Link returns: full recovery within one tick.
	tr.AssociateErr = nil
	if !s.EnsureReady() {
		t.Fatal("expected ready after link recovery")
	}
}

func TestSupervisorLinkDropMidConnect(t *testing.T) {
	tr := &FakeTransport{DropLinkOnOpen: true}
	s, _ := newTestSupervisor(tr)

	if s.EnsureReady() {
		t.Fatal("expected not ready when the link drops mid connect")
	}
	link, session := s.States()
	if link != LinkDown {
		t.Errorf("link: got %s, want DOWN", link)
	}
	if session != SessionDisconnected {
		t.Errorf("session: got %s, want DISCONNECTED", session)
	}
}

func TestSupervisorSessionLossDetectedOnPoll(t *testing.T) {
	tr := &FakeTransport{}
	s, _ := newTestSupervisor(tr)
	s.EnsureReady()

	// Broker closes the session; link stays up.
	tr.Session = false
	if s.EnsureReady() {
		t.Fatal("expected not ready on the poll that detects session loss")
	}
	if _, session := s.States(); session != SessionDisconnected {
		t.Errorf("session: got %s, want DISCONNECTED", session)
	}

	// Next tick reconnects.
	if !s.EnsureReady() {
		t.Fatal("expected ready after reconnect")
	}
}

func TestSupervisorSendGuard(t *testing.T) {
	tr := &FakeTransport{}
	s, _ := newTestSupervisor(tr)

	if err := s.Send("robotic_arm/commands", []byte("0x01")); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected before connect, got %v", err)
	}

	s.EnsureReady()
	if err := s.Send("robotic_arm/commands", []byte("0x01")); err != nil {
		t.Errorf("unexpected send error: %v", err)
	}
	if len(tr.Sent) != 1 || string(tr.Sent[0].Payload) != "0x01" {
		t.Errorf("unexpected sent messages: %v", tr.Sent)
	}
}

func TestSupervisorReady(t *testing.T) {
	tr := &FakeTransport{}
	s, _ := newTestSupervisor(tr)

	if s.Ready() {
		t.Error("should not be ready before any tick")
	}
	s.EnsureReady()
	if !s.Ready() {
		t.Error("should be ready after successful tick")
	}
}

func TestStateStrings(t *testing.T) {
	if LinkDown.String() != "DOWN" || LinkUp.String() != "UP" {
		t.Error("link state strings changed")
	}
	if SessionDisconnected.String() != "DISCONNECTED" ||
		SessionConnecting.String() != "CONNECTING" ||
		SessionConnected.String() != "CONNECTED" {
		t.Error("session state strings changed")
	}
}

package conn

import (
	"log"
	"time"
)

// Supervisor advances the connectivity state machine. It is the exclusive
// mutator of the link and session states; everything else reads them through
// Ready and States.
//
// EnsureReady is called once per sampling tick. Each call advances the
// machine by at most one step and performs at most one retry wait, so a
// prolonged outage slows a tick by one bounded delay instead of starving
// sampling until the path recovers.
type Supervisor struct {
	tr        Transport
	sessionID string
	linkRetry time.Duration
	backoff   time.Duration

	link    LinkState
	session SessionState

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

// NewSupervisor creates a supervisor over the given transport. linkRetry is
// the wait after a failed association, backoff the wait after a failed
// session connect.
func NewSupervisor(tr Transport, sessionID string, linkRetry, backoff time.Duration) *Supervisor {
	return &Supervisor{
		tr:        tr,
		sessionID: sessionID,
		linkRetry: linkRetry,
		backoff:   backoff,
		sleep:     time.Sleep,
	}
}

// EnsureReady polls the transport, advances the state machine one bounded
// step, and reports whether the session is ready for publishing.
func (s *Supervisor) EnsureReady() bool {
	if !s.tr.LinkUp() {
		if s.link == LinkUp {
			log.Printf("conn: link lost")
		}
		// Link loss forces the session down immediately.
		s.link = LinkDown
		s.session = SessionDisconnected
	}

	if s.link == LinkDown {
		if err := s.tr.Associate(); err != nil {
			log.Printf("conn: associate failed: %v (retry in %v)", err, s.linkRetry)
			s.sleep(s.linkRetry)
			return false
		}
		s.link = LinkUp
		log.Printf("conn: link up")
	}

	if s.session == SessionConnected {
		if !s.tr.SessionUp() {
			log.Printf("conn: session lost")
			s.session = SessionDisconnected
			return false
		}
		return true
	}

	s.session = SessionConnecting
	if err := s.tr.OpenSession(s.sessionID); err != nil {
		log.Printf("conn: session connect failed: %v (backoff %v)", err, s.backoff)
		s.session = SessionDisconnected
		s.sleep(s.backoff)
		return false
	}
	if !s.tr.LinkUp() {
		// Link dropped mid-attempt; the session result is not trustworthy.
		s.link = LinkDown
		s.session = SessionDisconnected
		return false
	}
	s.session = SessionConnected
	log.Printf("conn: session %q connected", s.sessionID)
	return true
}

// Ready reports whether the session is connected. Read-only; safe for any
// component to call.
func (s *Supervisor) Ready() bool {
	return s.session == SessionConnected
}

// States returns the current link and session states.
func (s *Supervisor) States() (LinkState, SessionState) {
	return s.link, s.session
}

// Send transmits a payload over the active session. It refuses when the
// session is not connected, so a gesture can never be published early.
func (s *Supervisor) Send(topic string, payload []byte) error {
	if s.session != SessionConnected {
		return ErrNotConnected
	}
	return s.tr.Send(topic, payload)
}

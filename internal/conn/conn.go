// Package conn supervises the two-level connectivity path (link, then
// session) the glove publishes through. The underlying transport is injected,
// so the state machine is testable without a network.
package conn

import "errors"

// ErrNotConnected is returned by Send when the session layer is not up.
var ErrNotConnected = errors.New("conn: session not connected")

// LinkState is the lower connectivity level. The link must be up before any
// session activity.
type LinkState int

const (
	LinkDown LinkState = iota
	LinkUp
)

func (s LinkState) String() string {
	if s == LinkUp {
		return "UP"
	}
	return "DOWN"
}

// SessionState is the publish/subscribe connection level, valid only atop an
// established link.
type SessionState int

const (
	SessionDisconnected SessionState = iota
	SessionConnecting
	SessionConnected
)

func (s SessionState) String() string {
	switch s {
	case SessionConnecting:
		return "CONNECTING"
	case SessionConnected:
		return "CONNECTED"
	}
	return "DISCONNECTED"
}

// Transport is the capability the supervisor drives. Associate and
// OpenSession establish the two levels; LinkUp and SessionUp are polled once
// per tick; Send requires an open session.
type Transport interface {
	Associate() error
	LinkUp() bool
	OpenSession(id string) error
	SessionUp() bool
	Send(topic string, payload []byte) error
}

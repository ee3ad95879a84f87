// Package mqtt provides the glove's MQTT session layer and gesture
// publishing, with abstraction for testing.
package mqtt

import (
	"fmt"

	"github.com/sweeney/glove-controller/internal/gesture"
)

// Topic is the default topic the robotic-arm consumer subscribes to.
const Topic = "robotic_arm/commands"

// DefaultClientID is the default MQTT session identifier.
const DefaultClientID = "glove-controller"

// FormatGesture renders a gesture's wire payload: the one-byte code as a
// 4-character ASCII string, uppercase hex, zero-padded ("0x01".."0x04").
func FormatGesture(g gesture.Gesture) []byte {
	return []byte(fmt.Sprintf("0x%02X", byte(g)))
}

// Sender transmits a payload over an established session. Satisfied by
// *conn.Supervisor.
type Sender interface {
	Send(topic string, payload []byte) error
}

// Publisher serializes gestures and hands them to the session layer.
// Delivery is best effort and at most once: a gesture is a transient intent,
// so a failed transmission is reported but never retried here — the next tick
// classifies a fresh frame.
type Publisher struct {
	session Sender
	topic   string
}

// NewPublisher creates a publisher sending to the given topic.
func NewPublisher(session Sender, topic string) *Publisher {
	return &Publisher{session: session, topic: topic}
}

// Publish transmits the gesture's wire code. No-op for gesture.None.
func (p *Publisher) Publish(g gesture.Gesture) error {
	if g == gesture.None {
		return nil
	}
	if err := p.session.Send(p.topic, FormatGesture(g)); err != nil {
		return fmt.Errorf("publish %s: %w", g, err)
	}
	return nil
}

// Package gesture contains pure gesture classification logic.
// This package has NO external dependencies (no I2C, GPIO, MQTT, OS, or
// time.Sleep). Time is always injectable via time.Time parameters.
package gesture

import "time"

// Gesture is a discrete hand-motion classification. The numeric value of each
// non-None gesture is its one-byte wire code.
type Gesture byte

const (
	None     Gesture = 0x00
	Fist     Gesture = 0x01
	OpenHand Gesture = 0x02
	Left     Gesture = 0x03
	Right    Gesture = 0x04
)

// String returns a human-readable name for logs and the status page.
func (g Gesture) String() string {
	switch g {
	case None:
		return "NONE"
	case Fist:
		return "FIST"
	case OpenHand:
		return "OPEN_HAND"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	}
	return "UNKNOWN"
}

// Frame is one temporally coherent snapshot of all sensor channels.
// It is a value type, built once per tick and never mutated.
type Frame struct {
	// Flex1, Flex2 are raw analog magnitudes (12-bit scale, typically 0-4095).
	Flex1 int
	Flex2 int

	// AccelX, AccelY, AccelZ are acceleration in m/s², signed.
	AccelX float64
	AccelY float64
	AccelZ float64

	// Touch1, Touch2 are debounced touch states.
	Touch1 bool
	Touch2 bool
}

// Thresholds holds the classification boundaries. All comparisons are strict,
// so a channel sitting exactly on a boundary does not match.
type Thresholds struct {
	// FistMax: both flex channels must be strictly below this for a fist.
	FistMax int
	// OpenMin: both flex channels must be strictly above this for an open hand.
	OpenMin int
	// Tilt: magnitude of X acceleration (m/s²) beyond which a left/right
	// tilt is recognized.
	Tilt float64
}

// DefaultThresholds are the factory calibration values.
var DefaultThresholds = Thresholds{
	FistMax: 500,
	OpenMin: 2000,
	Tilt:    5.0,
}

// ChannelState tracks debounce state for a single touch channel.
type ChannelState struct {
	// Last raw read of the channel.
	Raw bool
	// Time of that read.
	ReadAt time.Time
	// Whether a first read has been taken.
	Primed bool
}

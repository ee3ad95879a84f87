// Package sensors provides sensor channel access with hardware abstraction.
// The real implementation reads flex sensors through an ADS1115 ADC, touch
// sensors through the Linux GPIO character device, and the accelerometer
// through an MPU6050 on I2C. The fake implementation allows testing without
// hardware.
package sensors

import (
	"fmt"
	"time"

	"github.com/sweeney/glove-controller/internal/gesture"
)

// AnalogReader reads an analog magnitude from a channel.
type AnalogReader interface {
	// ReadAnalog returns the raw magnitude of the given ADC channel,
	// scaled to 12 bits (0-4095).
	ReadAnalog(channel int) (int, error)
}

// DigitalReader reads a binary level from a pin.
type DigitalReader interface {
	ReadDigital(pin int) (bool, error)
}

// InertialReader reads one 3-axis acceleration sample.
type InertialReader interface {
	// ReadAccel returns acceleration in m/s².
	ReadAccel() (x, y, z float64, err error)
}

// Reader combines the three capabilities plus resource cleanup.
type Reader interface {
	AnalogReader
	DigitalReader
	InertialReader
	Close() error
}

// Pins maps the glove's logical channels to channel/pin identifiers.
type Pins struct {
	Flex1  int // ADC channel
	Flex2  int // ADC channel
	Touch1 int // GPIO pin (BCM numbering)
	Touch2 int // GPIO pin (BCM numbering)
}

// DefaultPins matches the reference glove wiring.
var DefaultPins = Pins{
	Flex1:  0,
	Flex2:  1,
	Touch1: 4,
	Touch2: 14,
}

// Acquirer assembles one immutable frame per tick. Touch channels pass
// through per-channel debouncers, so a touch becomes active only after two
// agreeing reads on consecutive ticks.
type Acquirer struct {
	r    Reader
	pins Pins
	db1  *gesture.Debouncer
	db2  *gesture.Debouncer
}

// NewAcquirer creates an acquirer over the given reader.
func NewAcquirer(r Reader, pins Pins, debounce time.Duration) *Acquirer {
	return &Acquirer{
		r:    r,
		pins: pins,
		db1:  gesture.NewDebouncer(debounce),
		db2:  gesture.NewDebouncer(debounce),
	}
}

// Acquire reads all channels once, in the fixed order flex → inertial →
// touch, and returns the frame. Any failed read aborts the frame: the error
// propagates and no value is fabricated for the channel.
func (a *Acquirer) Acquire(now time.Time) (gesture.Frame, error) {
	flex1, err := a.r.ReadAnalog(a.pins.Flex1)
	if err != nil {
		return gesture.Frame{}, fmt.Errorf("flex1: %w", err)
	}
	flex2, err := a.r.ReadAnalog(a.pins.Flex2)
	if err != nil {
		return gesture.Frame{}, fmt.Errorf("flex2: %w", err)
	}

	x, y, z, err := a.r.ReadAccel()
	if err != nil {
		return gesture.Frame{}, fmt.Errorf("accel: %w", err)
	}

	touch1, err := a.r.ReadDigital(a.pins.Touch1)
	if err != nil {
		return gesture.Frame{}, fmt.Errorf("touch1: %w", err)
	}
	touch2, err := a.r.ReadDigital(a.pins.Touch2)
	if err != nil {
		return gesture.Frame{}, fmt.Errorf("touch2: %w", err)
	}

	return gesture.Frame{
		Flex1:  flex1,
		Flex2:  flex2,
		AccelX: x,
		AccelY: y,
		AccelZ: z,
		Touch1: a.db1.Sample(touch1, now),
		Touch2: a.db2.Sample(touch2, now),
	}, nil
}

package sensors

import (
	"errors"
	"fmt"
)

// Sample is one scripted set of raw channel values.
type Sample struct {
	Flex1  int
	Flex2  int
	AccelX float64
	AccelY float64
	AccelZ float64
	Touch1 bool // raw (pre-debounce) level
	Touch2 bool
}

// FakeReader is a test double that returns scripted channel values. All
// reads within one acquisition pass see the same sample; reading the touch2
// pin — the last channel in an acquisition pass — advances the script.
// If samples are exhausted, the last sample repeats.
type FakeReader struct {
	// Samples contains the scripted values, one per acquisition pass.
	Samples []Sample

	// Pins tells the reader which identifiers map to which channel.
	Pins Pins

	// ReadError, if set, will be returned by every read.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(pins Pins, samples []Sample) *FakeReader {
	return &FakeReader{Pins: pins, Samples: samples}
}

func (f *FakeReader) current() (Sample, error) {
	if f.ReadError != nil {
		return Sample{}, f.ReadError
	}
	if len(f.Samples) == 0 {
		return Sample{}, errors.New("no samples configured")
	}
	return f.Samples[f.index], nil
}

func (f *FakeReader) advance() {
	if f.index < len(f.Samples)-1 {
		f.index++
	}
}

// ReadAnalog returns the scripted flex value for the channel.
func (f *FakeReader) ReadAnalog(channel int) (int, error) {
	s, err := f.current()
	if err != nil {
		return 0, err
	}
	switch channel {
	case f.Pins.Flex1:
		return s.Flex1, nil
	case f.Pins.Flex2:
		return s.Flex2, nil
	}
	return 0, fmt.Errorf("unknown analog channel %d", channel)
}

// ReadDigital returns the scripted raw touch level for the pin.
func (f *FakeReader) ReadDigital(pin int) (bool, error) {
	s, err := f.current()
	if err != nil {
		return false, err
	}
	switch pin {
	case f.Pins.Touch1:
		return s.Touch1, nil
	case f.Pins.Touch2:
		f.advance()
		return s.Touch2, nil
	}
	return false, fmt.Errorf("unknown digital pin %d", pin)
}

// ReadAccel returns the scripted acceleration sample.
func (f *FakeReader) ReadAccel() (x, y, z float64, err error) {
	s, err := f.current()
	if err != nil {
		return 0, 0, 0, err
	}
	return s.AccelX, s.AccelY, s.AccelZ, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
	f.ReadError = nil
}

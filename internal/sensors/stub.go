//go:build !linux

package sensors

import "errors"

// RealReader is not available on non-Linux platforms.
type RealReader struct{}

// DefaultIMUAddr mirrors the Linux build so config validation stays portable.
const DefaultIMUAddr = 0x68

// NewRealReader returns an error on non-Linux platforms.
func NewRealReader(i2cBus string, imuAddr uint16, pins Pins) (*RealReader, error) {
	return nil, errors.New("sensors: not supported on this platform (requires Linux)")
}

// ReadAnalog is not implemented on non-Linux platforms.
func (r *RealReader) ReadAnalog(channel int) (int, error) {
	return 0, errors.New("sensors: not supported")
}

// ReadDigital is not implemented on non-Linux platforms.
func (r *RealReader) ReadDigital(pin int) (bool, error) {
	return false, errors.New("sensors: not supported")
}

// ReadAccel is not implemented on non-Linux platforms.
func (r *RealReader) ReadAccel() (x, y, z float64, err error) {
	return 0, 0, 0, errors.New("sensors: not supported")
}

// Close is a no-op on non-Linux platforms.
func (r *RealReader) Close() error {
	return nil
}

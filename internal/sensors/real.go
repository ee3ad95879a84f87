//go:build linux

package sensors

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

// RealReader reads the glove hardware: flex sensors through an ADS1115 ADC,
// touch sensors through the Linux GPIO character device, and the MPU6050
// accelerometer over I2C.
type RealReader struct {
	chip  *gpiocdev.Chip
	touch map[int]*gpiocdev.Line
	flex  map[int]analog.PinADC
	imu   *mpu6050

	bus closer
}

type closer interface {
	Close() error
}

// NewRealReader initializes all sensor hardware. An absent or unresponsive
// MPU6050 is an error: gesture classification is meaningless without the
// inertial channel, so startup must not proceed.
func NewRealReader(i2cBus string, imuAddr uint16, pins Pins) (*RealReader, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(i2cBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", i2cBus, err)
	}

	imu, err := newMPU6050(bus, imuAddr)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init mpu6050: %w", err)
	}

	adc, err := ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ads1115: %w", err)
	}

	r := &RealReader{
		touch: make(map[int]*gpiocdev.Line),
		flex:  make(map[int]analog.PinADC),
		imu:   imu,
		bus:   bus,
	}

	for _, ch := range []int{pins.Flex1, pins.Flex2} {
		adcCh, err := adcChannel(ch)
		if err != nil {
			r.Close()
			return nil, err
		}
		pin, err := adc.PinForChannel(adcCh, 3300*physic.MilliVolt, 10*physic.Hertz, ads1x15.SaveEnergy)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("flex channel %d: %w", ch, err)
		}
		r.flex[ch] = pin
	}

	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	r.chip = chip

	for _, pin := range []int{pins.Touch1, pins.Touch2} {
		line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request touch pin %d: %w", pin, err)
		}
		r.touch[pin] = line
	}

	return r, nil
}

func adcChannel(ch int) (ads1x15.Channel, error) {
	switch ch {
	case 0:
		return ads1x15.Channel0, nil
	case 1:
		return ads1x15.Channel1, nil
	case 2:
		return ads1x15.Channel2, nil
	case 3:
		return ads1x15.Channel3, nil
	}
	return 0, fmt.Errorf("adc channel %d out of range 0-3", ch)
}

// ReadAnalog reads one flex channel. The ADS1115's 15-bit positive range is
// scaled down to a 12-bit magnitude so the calibrated thresholds stay in
// their usual 0-4095 range.
func (r *RealReader) ReadAnalog(channel int) (int, error) {
	pin, ok := r.flex[channel]
	if !ok {
		return 0, fmt.Errorf("analog channel %d not configured", channel)
	}
	sample, err := pin.Read()
	if err != nil {
		return 0, fmt.Errorf("read analog channel %d: %w", channel, err)
	}
	v := int(sample.Raw >> 3)
	if v < 0 {
		v = 0
	}
	return v, nil
}

// ReadDigital reads one raw touch level.
func (r *RealReader) ReadDigital(pin int) (bool, error) {
	line, ok := r.touch[pin]
	if !ok {
		return false, fmt.Errorf("digital pin %d not configured", pin)
	}
	v, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("read touch pin %d: %w", pin, err)
	}
	return v != 0, nil
}

// ReadAccel reads one acceleration sample from the MPU6050.
func (r *RealReader) ReadAccel() (x, y, z float64, err error) {
	return r.imu.accel()
}

// Close releases all sensor resources.
func (r *RealReader) Close() error {
	var errs []error
	for pin, line := range r.touch {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close touch pin %d: %w", pin, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close gpio chip: %w", err))
		}
	}
	if r.bus != nil {
		if err := r.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

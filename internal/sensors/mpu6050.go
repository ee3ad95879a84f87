//go:build linux

package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// MPU6050 register addresses and configuration values.
const (
	DefaultIMUAddr = 0x68

	regSmplrtDiv   = 0x19
	regConfig      = 0x1A // DLPF_CFG in bits 2:0
	regGyroConfig  = 0x1B // GYRO_FS_SEL in bits 4:3
	regAccelConfig = 0x1C // ACCEL_FS_SEL in bits 4:3
	regAccelXOutH  = 0x3B
	regPwrMgmt1    = 0x6B
	regWhoAmI      = 0x75

	whoAmIValue = 0x68

	dlpf21Hz     = 0x04 // ~21 Hz accelerometer bandwidth
	gyroFS500dps = 0x08 // FS_SEL=1, ±500 °/s
	accelFS8G    = 0x10 // AFS_SEL=2, ±8 g

	accelLSBPerG = 4096.0 // at ±8 g
	gravity      = 9.80665
)

// mpu6050 is a register-level driver for the MPU6050 over I2C. Only the
// accelerometer path is used; gyro range and filter bandwidth are still
// configured so the part behaves identically to the reference wiring.
type mpu6050 struct {
	dev i2c.Dev
}

// newMPU6050 probes the device and configures it. A wrong WHO_AM_I or a
// failed bus transaction means the sensor is absent.
func newMPU6050(bus i2c.Bus, addr uint16) (*mpu6050, error) {
	m := &mpu6050{dev: i2c.Dev{Bus: bus, Addr: addr}}

	var id [1]byte
	if err := m.dev.Tx([]byte{regWhoAmI}, id[:]); err != nil {
		return nil, fmt.Errorf("read WHO_AM_I: %w", err)
	}
	if id[0] != whoAmIValue {
		return nil, fmt.Errorf("unexpected WHO_AM_I 0x%02X (want 0x%02X)", id[0], whoAmIValue)
	}

	// Wake from sleep, internal 8 MHz clock.
	steps := []struct {
		reg, val byte
	}{
		{regPwrMgmt1, 0x00},
		{regConfig, dlpf21Hz},
		{regGyroConfig, gyroFS500dps},
		{regAccelConfig, accelFS8G},
		{regSmplrtDiv, 0x00},
	}
	for _, s := range steps {
		if err := m.write(s.reg, s.val); err != nil {
			return nil, fmt.Errorf("write reg 0x%02X: %w", s.reg, err)
		}
	}
	return m, nil
}

func (m *mpu6050) write(reg, val byte) error {
	return m.dev.Tx([]byte{reg, val}, nil)
}

// accel reads the three accelerometer axes in one burst and converts to
// m/s².
func (m *mpu6050) accel() (x, y, z float64, err error) {
	var buf [6]byte
	if err := m.dev.Tx([]byte{regAccelXOutH}, buf[:]); err != nil {
		return 0, 0, 0, fmt.Errorf("read accel registers: %w", err)
	}
	toMS2 := func(h, l byte) float64 {
		raw := int16(uint16(h)<<8 | uint16(l))
		return float64(raw) / accelLSBPerG * gravity
	}
	return toMS2(buf[0], buf[1]), toMS2(buf[2], buf[3]), toMS2(buf[4], buf[5]), nil
}

// Package config loads the glove's field calibration from a KEY=VALUE file.
// Every tunable — sampling cadence, debounce interval, classification
// thresholds, connectivity delays, topic and session identifiers, channel
// wiring — is adjustable here without a code change.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sweeney/glove-controller/internal/gesture"
	"github.com/sweeney/glove-controller/internal/mqtt"
	"github.com/sweeney/glove-controller/internal/sensors"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	Broker   string
	ClientID string
	Topic    string

	// Timing
	SampleInterval time.Duration
	Debounce       time.Duration
	LinkRetry      time.Duration
	SessionBackoff time.Duration
	SendTimeout    time.Duration

	// Classification thresholds
	FistMax int
	OpenMin int
	Tilt    float64

	// Hardware wiring
	Pins    sensors.Pins
	I2CBus  string
	IMUAddr uint16

	// HTTP status server ("" disables)
	HTTPAddr string
}

// Default returns the reference calibration.
func Default() *Config {
	return &Config{
		Broker:         "tcp://broker.hivemq.com:1883",
		ClientID:       mqtt.DefaultClientID,
		Topic:          mqtt.Topic,
		SampleInterval: 500 * time.Millisecond,
		Debounce:       50 * time.Millisecond,
		LinkRetry:      500 * time.Millisecond,
		SessionBackoff: 2 * time.Second,
		SendTimeout:    5 * time.Second,
		FistMax:        gesture.DefaultThresholds.FistMax,
		OpenMin:        gesture.DefaultThresholds.OpenMin,
		Tilt:           gesture.DefaultThresholds.Tilt,
		Pins:           sensors.DefaultPins,
		I2CBus:         "1",
		IMUAddr:        sensors.DefaultIMUAddr,
		HTTPAddr:       ":8080",
	}
}

// Thresholds returns the classification thresholds.
func (c *Config) Thresholds() gesture.Thresholds {
	return gesture.Thresholds{FistMax: c.FistMax, OpenMin: c.OpenMin, Tilt: c.Tilt}
}

// Load reads a calibration file and applies it over the defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	case "MQTT_BROKER":
		c.Broker = value
	case "MQTT_CLIENT_ID":
		c.ClientID = value
	case "TOPIC":
		c.Topic = value

	case "SAMPLE_INTERVAL_MS":
		return setMillis(&c.SampleInterval, key, value)
	case "DEBOUNCE_MS":
		return setMillis(&c.Debounce, key, value)
	case "LINK_RETRY_MS":
		return setMillis(&c.LinkRetry, key, value)
	case "SESSION_BACKOFF_MS":
		return setMillis(&c.SessionBackoff, key, value)
	case "SEND_TIMEOUT_MS":
		return setMillis(&c.SendTimeout, key, value)

	case "FIST_MAX":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid FIST_MAX %q: %w", value, err)
		}
		c.FistMax = v
	case "OPEN_MIN":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid OPEN_MIN %q: %w", value, err)
		}
		c.OpenMin = v
	case "TILT_THRESHOLD":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid TILT_THRESHOLD %q: %w", value, err)
		}
		c.Tilt = v

	case "FLEX1_CHANNEL":
		return setInt(&c.Pins.Flex1, key, value)
	case "FLEX2_CHANNEL":
		return setInt(&c.Pins.Flex2, key, value)
	case "TOUCH1_PIN":
		return setInt(&c.Pins.Touch1, key, value)
	case "TOUCH2_PIN":
		return setInt(&c.Pins.Touch2, key, value)
	case "I2C_BUS":
		c.I2CBus = value
	case "IMU_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid IMU_ADDR %q: %w", value, err)
		}
		c.IMUAddr = uint16(addr)

	case "HTTP_ADDR":
		c.HTTPAddr = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = v
	return nil
}

func setMillis(dst *time.Duration, key, value string) error {
	ms, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if ms <= 0 {
		return fmt.Errorf("%s must be positive, got %d", key, ms)
	}
	*dst = time.Duration(ms) * time.Millisecond
	return nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("MQTT_CLIENT_ID is required")
	}
	if c.Topic == "" {
		return fmt.Errorf("TOPIC is required")
	}
	// The fist and open-hand rules must stay mutually exclusive.
	if c.FistMax >= c.OpenMin {
		return fmt.Errorf("FIST_MAX (%d) must be below OPEN_MIN (%d)", c.FistMax, c.OpenMin)
	}
	if c.Tilt <= 0 {
		return fmt.Errorf("TILT_THRESHOLD must be positive, got %v", c.Tilt)
	}
	if c.Debounce >= c.SampleInterval {
		return fmt.Errorf("DEBOUNCE_MS (%v) must be below SAMPLE_INTERVAL_MS (%v)", c.Debounce, c.SampleInterval)
	}
	return nil
}

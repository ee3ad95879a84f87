package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glove.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadAppliesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
# field calibration
MQTT_BROKER = tcp://10.0.0.5:1883
FIST_MAX = 600
TILT_THRESHOLD = 3.5
SAMPLE_INTERVAL_MS = 250
TOUCH1_PIN = 17
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Broker != "tcp://10.0.0.5:1883" {
		t.Errorf("broker: got %q", cfg.Broker)
	}
	if cfg.FistMax != 600 {
		t.Errorf("fist max: got %d", cfg.FistMax)
	}
	if cfg.Tilt != 3.5 {
		t.Errorf("tilt: got %v", cfg.Tilt)
	}
	if cfg.SampleInterval != 250*time.Millisecond {
		t.Errorf("sample interval: got %v", cfg.SampleInterval)
	}
	if cfg.Pins.Touch1 != 17 {
		t.Errorf("touch1 pin: got %d", cfg.Pins.Touch1)
	}

	// Untouched keys keep their defaults.
	if cfg.OpenMin != 2000 {
		t.Errorf("open min should stay default, got %d", cfg.OpenMin)
	}
	if cfg.Topic != "robotic_arm/commands" {
		t.Errorf("topic should stay default, got %q", cfg.Topic)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "WIFI_SSID = MyNetwork\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	path := writeConfig(t, "FIST_MAX\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for line without '='")
	}
}

func TestLoadRejectsOverlappingThresholds(t *testing.T) {
	path := writeConfig(t, "FIST_MAX = 2500\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error when FIST_MAX >= OPEN_MIN")
	}
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	path := writeConfig(t, "DEBOUNCE_MS = 0\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for zero debounce interval")
	}
}

func TestLoadRejectsDebounceAboveSampleInterval(t *testing.T) {
	path := writeConfig(t, "DEBOUNCE_MS = 800\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error when debounce exceeds sample interval")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.conf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadHexIMUAddr(t *testing.T) {
	path := writeConfig(t, "IMU_ADDR = 0x69\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IMUAddr != 0x69 {
		t.Errorf("imu addr: got 0x%02X", cfg.IMUAddr)
	}
}

func TestThresholds(t *testing.T) {
	cfg := Default()
	cfg.FistMax = 400
	th := cfg.Thresholds()
	if th.FistMax != 400 || th.OpenMin != 2000 || th.Tilt != 5.0 {
		t.Errorf("unexpected thresholds: %+v", th)
	}
}

package web

import (
	"encoding/json"
	"time"

	"github.com/sweeney/glove-controller/internal/status"
)

// StatusJSON is the JSON representation of the daemon status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Gesture       string       `json:"gesture"`
	Frame         *FrameJSON   `json:"frame,omitempty"`
	Frames        int64        `json:"frames"`
	Connectivity  ConnJSON     `json:"connectivity"`
	Counts        CountsJSON   `json:"counts"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	Config        ConfigJSON   `json:"config"`
}

// FrameJSON is the JSON representation of the last sensor frame.
type FrameJSON struct {
	Flex1  int     `json:"flex1"`
	Flex2  int     `json:"flex2"`
	AccelX float64 `json:"accel_x"`
	AccelY float64 `json:"accel_y"`
	AccelZ float64 `json:"accel_z"`
	Touch1 bool    `json:"touch1"`
	Touch2 bool    `json:"touch2"`
}

// ConnJSON reports the two connectivity levels.
type ConnJSON struct {
	Link    string `json:"link"`
	Session string `json:"session"`
	Broker  string `json:"broker"`
}

// CountsJSON is the JSON representation of gesture and failure counts.
type CountsJSON struct {
	Fist            int `json:"fist"`
	OpenHand        int `json:"open_hand"`
	Left            int `json:"left"`
	Right           int `json:"right"`
	PublishFailures int `json:"publish_failures"`
	ReadErrors      int `json:"read_errors"`
	Dropped         int `json:"dropped"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	SampleMs    int64   `json:"sample_ms"`
	DebounceMs  int64   `json:"debounce_ms"`
	LinkRetryMs int64   `json:"link_retry_ms"`
	BackoffMs   int64   `json:"backoff_ms"`
	Broker      string  `json:"broker"`
	Topic       string  `json:"topic"`
	HTTPAddr    string  `json:"http_addr"`
	FistMax     int     `json:"fist_max"`
	OpenMin     int     `json:"open_min"`
	Tilt        float64 `json:"tilt_threshold"`
}

func formatJSON(snap status.Snapshot) []byte {
	sj := StatusJSON{
		Status: StatusInner{
			Gesture: snap.LastGesture.String(),
			Frames:  snap.Frames,
			Connectivity: ConnJSON{
				Link:    snap.Link.String(),
				Session: snap.Session.String(),
				Broker:  snap.Config.Broker,
			},
			Counts: CountsJSON{
				Fist:            snap.Counts.Fist,
				OpenHand:        snap.Counts.OpenHand,
				Left:            snap.Counts.Left,
				Right:           snap.Counts.Right,
				PublishFailures: snap.Counts.PublishFailures,
				ReadErrors:      snap.Counts.ReadErrors,
				Dropped:         snap.Counts.Dropped,
			},
			UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
			StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
			Timestamp:     snap.Now.UTC().Format(time.RFC3339),
			Config: ConfigJSON{
				SampleMs:    snap.Config.SampleMs,
				DebounceMs:  snap.Config.DebounceMs,
				LinkRetryMs: snap.Config.LinkRetryMs,
				BackoffMs:   snap.Config.BackoffMs,
				Broker:      snap.Config.Broker,
				Topic:       snap.Config.Topic,
				HTTPAddr:    snap.Config.HTTPAddr,
				FistMax:     snap.Config.FistMax,
				OpenMin:     snap.Config.OpenMin,
				Tilt:        snap.Config.Tilt,
			},
		},
	}

	if snap.HaveFrame {
		f := snap.LastFrame
		sj.Status.Frame = &FrameJSON{
			Flex1:  f.Flex1,
			Flex2:  f.Flex2,
			AccelX: f.AccelX,
			AccelY: f.AccelY,
			AccelZ: f.AccelZ,
			Touch1: f.Touch1,
			Touch2: f.Touch2,
		}
	}

	data, _ := json.MarshalIndent(sj, "", "  ")
	return data
}

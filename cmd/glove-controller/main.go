// Command glove-controller samples glove sensors, classifies hand gestures
// and publishes command codes to an MQTT broker for a robotic arm.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/glove-controller/internal/config"
	"github.com/sweeney/glove-controller/internal/conn"
	"github.com/sweeney/glove-controller/internal/gesture"
	"github.com/sweeney/glove-controller/internal/mqtt"
	"github.com/sweeney/glove-controller/internal/sensors"
	"github.com/sweeney/glove-controller/internal/status"
	"github.com/sweeney/glove-controller/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to KEY=VALUE config file")
	broker := flag.String("broker", "", "MQTT broker address (overrides config)")
	httpAddr := flag.String("http", "", `HTTP status address (overrides config, "off" disables)`)
	printFrame := flag.Bool("print-frame", false, "Read one sensor frame, print it and exit")

	flag.Parse()

	cfg, err := loadConfig(*configPath, *broker, *httpAddr)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *printFrame); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func loadConfig(path, broker, httpAddr string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if broker != "" {
		cfg.Broker = broker
	}
	switch httpAddr {
	case "":
	case "off":
		cfg.HTTPAddr = ""
	default:
		cfg.HTTPAddr = httpAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config, printFrame bool) error {
	reader, err := sensors.NewRealReader(cfg.I2CBus, cfg.IMUAddr, cfg.Pins)
	if err != nil {
		return fmt.Errorf("init sensors: %w", err)
	}
	defer reader.Close()

	// Print frame mode: one raw read, no debounce, no broker.
	if printFrame {
		return printOneFrame(reader, cfg.Pins)
	}

	client, err := mqtt.NewClient(cfg.Broker, cfg.SendTimeout)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer client.Close()

	supervisor := conn.NewSupervisor(client, cfg.ClientID, cfg.LinkRetry, cfg.SessionBackoff)
	publisher := mqtt.NewPublisher(supervisor, cfg.Topic)
	acquirer := sensors.NewAcquirer(reader, cfg.Pins, cfg.Debounce)

	tracker := status.NewTracker(time.Now(), status.Config{
		SampleMs:    cfg.SampleInterval.Milliseconds(),
		DebounceMs:  cfg.Debounce.Milliseconds(),
		LinkRetryMs: cfg.LinkRetry.Milliseconds(),
		BackoffMs:   cfg.SessionBackoff.Milliseconds(),
		Broker:      cfg.Broker,
		Topic:       cfg.Topic,
		HTTPAddr:    cfg.HTTPAddr,
		FistMax:     cfg.FistMax,
		OpenMin:     cfg.OpenMin,
		Tilt:        cfg.Tilt,
	})

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTPAddr)
	}

	log.Printf("started: sample=%v debounce=%v broker=%s topic=%s", cfg.SampleInterval, cfg.Debounce, cfg.Broker, cfg.Topic)

	ticker := time.NewTicker(cfg.SampleInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(acquirer, supervisor, publisher, tracker, cfg.Thresholds(), time.Now, ticker.C, sigCh)
}

// frameSource yields one debounced sensor frame per tick.
type frameSource interface {
	Acquire(now time.Time) (gesture.Frame, error)
}

// connectivity drives link and session recovery and reports readiness.
type connectivity interface {
	EnsureReady() bool
	States() (conn.LinkState, conn.SessionState)
}

// gesturePublisher sends one gesture code to the command topic.
type gesturePublisher interface {
	Publish(g gesture.Gesture) error
}

func runLoop(source frameSource, supervisor connectivity, publisher gesturePublisher, tracker *status.Tracker, th gesture.Thresholds, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	prevLink, prevSession := supervisor.States()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			return nil

		case <-tick:
			t := now()

			ready := supervisor.EnsureReady()
			link, session := supervisor.States()
			if link != prevLink || session != prevSession {
				log.Printf("connectivity: link=%s session=%s", link, session)
				prevLink, prevSession = link, session
			}
			if tracker != nil {
				tracker.SetConnectivity(link, session)
			}

			frame, err := source.Acquire(t)
			if err != nil {
				log.Printf("sensor read error: %v", err)
				if tracker != nil {
					tracker.RecordReadError()
				}
				continue
			}

			g := gesture.Classify(frame, th)
			if tracker != nil {
				tracker.RecordFrame(frame, g)
			}
			if g == gesture.None {
				continue
			}

			if !ready {
				log.Printf("gesture %s dropped: not connected", g)
				if tracker != nil {
					tracker.RecordDropped()
				}
				continue
			}

			if err := publisher.Publish(g); err != nil {
				log.Printf("publish error: %v", err)
				if tracker != nil {
					tracker.RecordPublishFailure()
				}
				continue
			}
			log.Printf("published %s (%s)", g, mqtt.FormatGesture(g))
			if tracker != nil {
				tracker.RecordPublished(g)
			}
		}
	}
}

func printOneFrame(reader sensors.Reader, pins sensors.Pins) error {
	flex1, err := reader.ReadAnalog(pins.Flex1)
	if err != nil {
		return fmt.Errorf("read flex1: %w", err)
	}
	flex2, err := reader.ReadAnalog(pins.Flex2)
	if err != nil {
		return fmt.Errorf("read flex2: %w", err)
	}
	ax, ay, az, err := reader.ReadAccel()
	if err != nil {
		return fmt.Errorf("read accel: %w", err)
	}
	touch1, err := reader.ReadDigital(pins.Touch1)
	if err != nil {
		return fmt.Errorf("read touch1: %w", err)
	}
	touch2, err := reader.ReadDigital(pins.Touch2)
	if err != nil {
		return fmt.Errorf("read touch2: %w", err)
	}
	fmt.Printf("flex1=%d flex2=%d accel=(%.2f, %.2f, %.2f) touch1=%s touch2=%s\n",
		flex1, flex2, ax, ay, az, onOff(touch1), onOff(touch2))
	return nil
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

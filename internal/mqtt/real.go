package mqtt

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Client is the real transport over a paho MQTT client. It implements the
// connectivity supervisor's Transport capability: the link level is TCP
// reachability of the broker host, the session level is the MQTT connection.
//
// Auto-reconnect and connect-retry are deliberately disabled on the paho
// client: reconnection is the supervisor's job, and two competing retry loops
// would fight over the same connection.
type Client struct {
	broker  string // full broker URL, e.g. tcp://192.168.1.200:1883
	addr    string // host:port used by the link probe
	timeout time.Duration

	client paho.Client
}

// NewClient creates a transport for the given broker URL. No connection is
// attempted; the supervisor drives both levels.
func NewClient(broker string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(broker)
	if err != nil {
		return nil, fmt.Errorf("parse broker %q: %w", broker, err)
	}
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("broker %q has no host", broker)
	}
	port := u.Port()
	if port == "" {
		port = "1883"
	}
	return &Client{
		broker:  broker,
		addr:    net.JoinHostPort(host, port),
		timeout: timeout,
	}, nil
}

// probe checks TCP reachability of the broker host.
func (c *Client) probe() error {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return fmt.Errorf("reach %s: %w", c.addr, err)
	}
	return conn.Close()
}

// Associate establishes the link level by probing the network path to the
// broker host.
func (c *Client) Associate() error {
	return c.probe()
}

// LinkUp reports whether the network path is available. A live MQTT session
// implies a live path, so the probe only runs when no session is up.
func (c *Client) LinkUp() bool {
	if c.client != nil && c.client.IsConnected() {
		return true
	}
	return c.probe() == nil
}

// OpenSession connects the MQTT session with the given client id.
func (c *Client) OpenSession(id string) error {
	opts := paho.NewClientOptions().
		AddBroker(c.broker).
		SetClientID(id).
		SetAutoReconnect(false).
		SetConnectTimeout(c.timeout)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(c.timeout) {
		return errors.New("connect timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	c.client = client
	return nil
}

// SessionUp reports whether the MQTT session is connected.
func (c *Client) SessionUp() bool {
	return c.client != nil && c.client.IsConnected()
}

// Send publishes a payload at QoS 0 (at-most-once), not retained.
func (c *Client) Send(topic string, payload []byte) error {
	if c.client == nil {
		return errors.New("no session")
	}
	token := c.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(c.timeout) {
		return errors.New("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects the session if one is up.
func (c *Client) Close() error {
	if c.client != nil {
		c.client.Disconnect(1000) // milliseconds to flush in-flight work
		c.client = nil
	}
	return nil
}

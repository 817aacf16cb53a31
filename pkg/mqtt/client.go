package mqtt

import (
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/ssafuel/station-gateway/pkg/logger"
)

const (
	reconnectInitialInterval = 1 * time.Second
	reconnectMaxInterval     = 32 * time.Second
	// Offline-queued messages are drained at this rate once the connection
	// comes back, to avoid flooding the broker right after a reconnect.
	drainInterval = 500 * time.Millisecond
)

// Client wraps a paho MQTT client with auto-reconnect and an offline publish
// queue. Publishes attempted while disconnected are queued and drained at a
// fixed rate after reconnection instead of being dropped.
//
// The client handle is safe for concurrent Publish and Subscribe calls; paho
// serializes the underlying network writes.
type Client struct {
	opts   *mqtt.ClientOptions
	client mqtt.Client

	mu      sync.Mutex
	offline []queuedMessage

	onConnect func(c *Client)
}

type queuedMessage struct {
	topic   string
	qos     byte
	payload []byte
}

func NewClient(cfg Config) (*Client, error) {
	opts, err := cfg.pahoOptions()
	if err != nil {
		return nil, err
	}

	c := &Client{opts: opts, onConnect: cfg.OnConnect}

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(reconnectInitialInterval)
	opts.SetMaxReconnectInterval(reconnectMaxInterval)
	opts.SetResumeSubs(true)
	opts.SetOrderMatters(false)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		logger.Info("mqtt connected", "broker", cfg.Broker)
		if c.onConnect != nil {
			c.onConnect(c)
		}
		go c.drainOffline()
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", "error", err)
	})
	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		logger.Info("mqtt reconnecting", "broker", cfg.Broker)
	})

	return c, nil
}

// Connect establishes the connection and blocks until the first attempt
// resolves. With ConnectRetry enabled paho keeps retrying in the background,
// so an initial timeout is not fatal for the caller.
func (c *Client) Connect() error {
	c.client = mqtt.NewClient(c.opts)
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("broker connection error: %w", token.Error())
	}
	return nil
}

// Publish sends a message to the given topic. When disconnected, the message
// is queued and sent after reconnection.
func (c *Client) Publish(topic string, qos byte, payload []byte) error {
	if c.client == nil || !c.client.IsConnectionOpen() {
		c.enqueue(queuedMessage{topic: topic, qos: qos, payload: payload})
		logger.Warn("mqtt offline, message queued", "topic", topic)
		return nil
	}

	token := c.client.Publish(topic, qos, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		logger.Error("mqtt publish failed", "topic", topic, "error", err)
		return err
	}
	logger.Debug("mqtt published", "topic", topic)
	return nil
}

// Subscribe registers a handler for the topic. Subscriptions made through
// here survive reconnects via paho's ResumeSubs.
func (c *Client) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	token := c.client.Subscribe(topic, qos, handler)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	logger.Info("mqtt subscribed", "topic", topic)
	return nil
}

func (c *Client) Disconnect() {
	if c.client != nil {
		c.client.Disconnect(250)
	}
	logger.Info("mqtt disconnected")
}

func (c *Client) IsConnected() bool {
	return c.client != nil && c.client.IsConnectionOpen()
}

func (c *Client) enqueue(m queuedMessage) {
	c.mu.Lock()
	c.offline = append(c.offline, m)
	c.mu.Unlock()
}

func (c *Client) drainOffline() {
	for {
		c.mu.Lock()
		if len(c.offline) == 0 {
			c.mu.Unlock()
			return
		}
		m := c.offline[0]
		c.offline = c.offline[1:]
		c.mu.Unlock()

		if err := c.Publish(m.topic, m.qos, m.payload); err != nil {
			logger.Error("mqtt drain publish failed", "topic", m.topic, "error", err)
		}
		time.Sleep(drainInterval)
	}
}

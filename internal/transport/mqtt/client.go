package mqtt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rocketscienceinc/tictactoe-service/internal/gaming"
)

const connectTimeout = 10 * time.Second

// Client - publish-only MQTT sink for event-plane notifications.
type Client struct {
	logger *slog.Logger
	client pahomqtt.Client
}

// New - connects to the broker. The connection auto-reconnects; individual
// publishes during an outage fail and are handled by the caller's
// best-effort policy.
func New(logger *slog.Logger, brokerAddress string, brokerPort int, clientID string) (*Client, error) {
	opts := pahomqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", brokerAddress, brokerPort)).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)

	client := pahomqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s:%d", brokerAddress, brokerPort)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	logger.Info("connected to MQTT broker", "address", brokerAddress, "port", brokerPort)

	return &Client{
		logger: logger.With("component", "mqtt_client"),
		client: client,
	}, nil
}

// Publish - publishes a zero-payload notification on the given topic. The
// notification is a "something changed" signal; clients re-fetch state.
func (that *Client) Publish(ctx context.Context, topic string, qos gaming.PublishQoS) error {
	token := that.client.Publish(topic, byte(qos), false, []byte{})

	select {
	case <-ctx.Done():
		return fmt.Errorf("publish canceled: %w", ctx.Err())
	case <-token.Done():
	}

	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	return nil
}

// Close - disconnects from the broker, allowing in-flight work to finish.
func (that *Client) Close() {
	that.client.Disconnect(uint(connectTimeout.Milliseconds()))
}

// Package mqttingest bridges device readings published over MQTT into the
// ingestion service. The bridge is optional: when no broker is configured
// the server runs HTTP-only.
package mqttingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"home-guardian/internal/config"
	"home-guardian/internal/models"
)

// Handler receives each decoded reading payload.
type Handler func(ctx context.Context, payload models.ReadingPayload) error

// Bridge subscribes to the readings topic and forwards payloads.
type Bridge struct {
	client  mqtt.Client
	topic   string
	logger  *slog.Logger
	handler Handler
}

// NewBridge configures a bridge for the given broker. Subscription happens
// in the OnConnect callback so a reconnect re-subscribes automatically and
// queued messages arriving right after CONNACK are not missed.
func NewBridge(cfg config.Config, handler Handler, logger *slog.Logger) *Bridge {
	b := &Bridge{
		topic:   cfg.MQTTTopic,
		logger:  logger,
		handler: handler,
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTTBroker, cfg.MQTTPort))
	opts.SetClientID(cfg.MQTTClientID)
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)

	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("mqtt connected", "broker", cfg.MQTTBroker, "topic", b.topic)
		token := client.Subscribe(b.topic, 1, b.onMessage)
		token.Wait()
		if err := token.Error(); err != nil {
			logger.Error("mqtt subscribe failed", "topic", b.topic, "error", err)
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", "error", err)
	})

	b.client = mqtt.NewClient(opts)
	return b
}

// Connect establishes the broker connection, bounded by ctx.
func (b *Bridge) Connect(ctx context.Context) error {
	token := b.client.Connect()

	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			return token.Error()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// Disconnect closes the broker connection, allowing in-flight work to finish.
func (b *Bridge) Disconnect() {
	b.client.Disconnect(250)
}

func (b *Bridge) onMessage(_ mqtt.Client, msg mqtt.Message) {
	payload, err := decodePayload(msg.Payload())
	if err != nil {
		b.logger.Warn("dropping malformed mqtt reading", "topic", msg.Topic(), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := b.handler(ctx, payload); err != nil {
		b.logger.Error("mqtt reading ingestion failed", "device_id", payload.DeviceID, "error", err)
	}
}

func decodePayload(data []byte) (models.ReadingPayload, error) {
	var payload models.ReadingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.ReadingPayload{}, fmt.Errorf("decoding reading payload: %w", err)
	}
	return payload, nil
}

package push

import (
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	disconnectQuiesce = 250 // ms

	DefaultPublishTimeout = 5 * time.Second
)

// ErrPublishTimeout is returned when the broker does not acknowledge a
// publish in time, e.g. while the client is reconnecting.
var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Publisher delivers one payload to one topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// MQTTPublisher publishes countdown updates to screens subscribed on the
// broker.
type MQTTPublisher struct {
	client mqtt.Client
	// PublishTimeout bounds the wait for the broker's acknowledgement.
	PublishTimeout time.Duration
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// NewMQTTPublisher connects to brokerURL with a unique client id.
func NewMQTTPublisher(brokerURL string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(fmt.Sprintf("athan-%s", uuid.NewString()))
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("MQTT publisher initialized")
	return &MQTTPublisher{client: client, PublishTimeout: DefaultPublishTimeout}, nil
}

func (p *MQTTPublisher) Publish(topic string, payload []byte) error {
	timeout := p.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}

	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("%w: %s after %s", ErrPublishTimeout, topic, timeout)
	}
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
	}
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(disconnectQuiesce)
	log.Info().Msg("MQTT publisher disconnected")
}

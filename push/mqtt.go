package push

import (
	"attendance/config"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	mqttQoS            = 1
	mqttConnectTimeout = 10 * time.Second
	mqttPublishTimeout = 5 * time.Second
)

type MQTTConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	ClientID    string
	TopicPrefix string
}

func MQTTConfigFromEnv() MQTTConfig {
	return MQTTConfig{
		Host:        config.MQTT_HOST,
		Port:        config.MQTT_PORT,
		Username:    config.MQTT_USERNAME,
		Password:    config.MQTT_PASSWORD,
		ClientID:    config.MQTT_CLIENT_ID,
		TopicPrefix: config.MQTT_TOPIC_PREFIX,
	}
}

// MQTTPublisher publishes attendance events to a broker
type MQTTPublisher struct {
	client mqtt.Client
	prefix string
}

func NewMQTTPublisher(cfg MQTTConfig) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(5 * time.Second)
	opts.SetKeepAlive(30 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	cli := mqtt.NewClient(opts)
	token := cli.Connect()
	if ok := token.WaitTimeout(mqttConnectTimeout); !ok {
		return nil, fmt.Errorf("mqtt connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", err)
	}
	return &MQTTPublisher{client: cli, prefix: cfg.TopicPrefix}, nil
}

// Topic returns <prefix>/course/<course id>/session/<meeting no>
func Topic(prefix string, ev *Event) string {
	return fmt.Sprintf("%s/course/%d/session/%d", prefix, ev.CourseID, ev.MeetingNo)
}

func (p *MQTTPublisher) Send(ev *Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	token := p.client.Publish(Topic(p.prefix, ev), mqttQoS, false, payload)
	if !token.WaitTimeout(mqttPublishTimeout) {
		return fmt.Errorf("mqtt publish timeout")
	}
	return token.Error()
}

func (p *MQTTPublisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

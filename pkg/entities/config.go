package entities

import "time"

const (
	BrokerProtocolMQTT string = "mqtt"
	BrokerProtocolAMQP string = "amqp"
)

type AgentConfig struct {
	Device        DeviceConfig  `yaml:"device"`
	Link          LinkConfig    `yaml:"link"`
	HTTP          HTTPConfig    `yaml:"http"`
	Broker        BrokerConfig  `yaml:"broker"`
	PublishPeriod time.Duration `yaml:"publish_period"`
	LoopInterval  time.Duration `yaml:"loop_interval"`
	LogLevel      string        `yaml:"log_level"`
	MetricsListen string        `yaml:"metrics_listen"`
}

type DeviceConfig struct {
	Interface       string `yaml:"interface"`
	HardwareAddress string `yaml:"hardware_address"`
}

type LinkConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

type HTTPConfig struct {
	URL          string        `yaml:"url"`
	APIKey       string        `yaml:"api_key"`
	Timeout      time.Duration `yaml:"timeout"`
	StrictStatus bool          `yaml:"strict_status"`
}

type BrokerConfig struct {
	Protocol   string        `yaml:"protocol"`
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port"`
	Username   string        `yaml:"username"`
	Password   string        `yaml:"password"`
	Topic      string        `yaml:"topic"`
	MaxPayload int           `yaml:"max_payload"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// DefaultAgentConfig mirrors the values the desk firmware was flashed with.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Link: LinkConfig{
			PollInterval: 100 * time.Millisecond,
		},
		HTTP: HTTPConfig{
			URL:     "http://api.thingspeak.com/update",
			Timeout: 10 * time.Second,
		},
		Broker: BrokerConfig{
			Protocol:   BrokerProtocolMQTT,
			Host:       "broker.hivemq.com",
			Port:       1883,
			Topic:      "smartdesk/medicoes",
			MaxPayload: 512,
			RetryDelay: 2 * time.Second,
		},
		PublishPeriod: 20 * time.Second,
		LoopInterval:  100 * time.Millisecond,
		LogLevel:      "info",
	}
}

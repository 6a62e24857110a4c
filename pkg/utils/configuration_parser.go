package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const envPrefix = "SMARTDESK_"

type config interface {
	entities.AgentConfig | map[string]string
}

func readTextFile(filepathName string) ([]byte, error) {
	fileContent, err := os.ReadFile(filepath.Clean(filepathName))
	return fileContent, err
}

// ConfigurationParser decodes a YAML file over configEntity, so fields absent
// from the file keep the values configEntity already had.
func ConfigurationParser[T config](filepathName string, configEntity T) (T, error) {
	fileContent, err := readTextFile(filepath.Clean(filepathName))
	if err != nil {
		return configEntity, err
	}

	err = yaml.Unmarshal(fileContent, &configEntity)
	return configEntity, err
}

// LoadConfiguration returns the agent configuration: defaults, then the YAML
// file (a missing file is not an error), then SMARTDESK_* environment variables.
func LoadConfiguration(filepathName string) (entities.AgentConfig, error) {
	conf := entities.DefaultAgentConfig()
	if filepathName != "" {
		parsed, err := ConfigurationParser(filepathName, conf)
		switch {
		case err == nil:
			conf = parsed
		case os.IsNotExist(err):
		default:
			return conf, errors.Wrapf(err, "parse configuration file %s", filepathName)
		}
	}

	if err := applyEnvironment(&conf); err != nil {
		return conf, err
	}
	if err := Validate(conf); err != nil {
		return conf, err
	}
	return conf, nil
}

// Validate rejects configurations the agent cannot run with.
func Validate(conf entities.AgentConfig) error {
	switch conf.Broker.Protocol {
	case entities.BrokerProtocolMQTT, entities.BrokerProtocolAMQP:
	default:
		return errors.Errorf("unknown broker protocol %q", conf.Broker.Protocol)
	}
	if conf.HTTP.URL == "" {
		return errors.New("http url is required")
	}
	if conf.Broker.Host == "" || conf.Broker.Topic == "" {
		return errors.New("broker host and topic are required")
	}
	if conf.Broker.Port <= 0 || conf.Broker.Port > 65535 {
		return errors.Errorf("invalid broker port %d", conf.Broker.Port)
	}
	if conf.Broker.MaxPayload <= 0 {
		return errors.New("broker max_payload must be positive")
	}
	if conf.PublishPeriod <= 0 || conf.LoopInterval <= 0 || conf.Link.PollInterval <= 0 || conf.Broker.RetryDelay <= 0 {
		return errors.New("periods and intervals must be positive")
	}
	return nil
}

func applyEnvironment(conf *entities.AgentConfig) error {
	conf.Device.Interface = GetValueFromEnvironmentVariable(envPrefix+"INTERFACE", conf.Device.Interface)
	conf.Device.HardwareAddress = GetValueFromEnvironmentVariable(envPrefix+"HARDWARE_ADDRESS", conf.Device.HardwareAddress)
	conf.HTTP.URL = GetValueFromEnvironmentVariable(envPrefix+"HTTP_URL", conf.HTTP.URL)
	conf.HTTP.APIKey = GetValueFromEnvironmentVariable(envPrefix+"HTTP_API_KEY", conf.HTTP.APIKey)
	conf.Broker.Protocol = GetValueFromEnvironmentVariable(envPrefix+"BROKER_PROTOCOL", conf.Broker.Protocol)
	conf.Broker.Host = GetValueFromEnvironmentVariable(envPrefix+"BROKER_HOST", conf.Broker.Host)
	conf.Broker.Username = GetValueFromEnvironmentVariable(envPrefix+"BROKER_USERNAME", conf.Broker.Username)
	conf.Broker.Password = GetValueFromEnvironmentVariable(envPrefix+"BROKER_PASSWORD", conf.Broker.Password)
	conf.Broker.Topic = GetValueFromEnvironmentVariable(envPrefix+"BROKER_TOPIC", conf.Broker.Topic)
	conf.LogLevel = GetValueFromEnvironmentVariable(envPrefix+"LOG_LEVEL", conf.LogLevel)
	conf.MetricsListen = GetValueFromEnvironmentVariable(envPrefix+"METRICS_LISTEN", conf.MetricsListen)

	var err error
	durations := []struct {
		name  string
		field *time.Duration
	}{
		{"HTTP_TIMEOUT", &conf.HTTP.Timeout},
		{"BROKER_RETRY_DELAY", &conf.Broker.RetryDelay},
		{"LINK_POLL_INTERVAL", &conf.Link.PollInterval},
		{"PUBLISH_PERIOD", &conf.PublishPeriod},
		{"LOOP_INTERVAL", &conf.LoopInterval},
	}
	for _, d := range durations {
		if *d.field, err = durationFromEnvironment(envPrefix+d.name, *d.field); err != nil {
			return err
		}
	}

	if conf.Broker.Port, err = intFromEnvironment(envPrefix+"BROKER_PORT", conf.Broker.Port); err != nil {
		return err
	}
	if conf.Broker.MaxPayload, err = intFromEnvironment(envPrefix+"BROKER_MAX_PAYLOAD", conf.Broker.MaxPayload); err != nil {
		return err
	}
	if value := os.Getenv(envPrefix + "HTTP_STRICT_STATUS"); value != "" {
		strict, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(err, "%sHTTP_STRICT_STATUS", envPrefix)
		}
		conf.HTTP.StrictStatus = strict
	}
	return nil
}

// GetValueFromEnvironmentVariable returns the variable's value, or defaultValue when it is unset or empty.
func GetValueFromEnvironmentVariable(variableName, defaultValue string) string {
	value := os.Getenv(variableName)
	if value != "" {
		return value
	}
	return defaultValue
}

func durationFromEnvironment(variableName string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(variableName)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue, errors.Wrap(err, variableName)
	}
	return parsed, nil
}

func intFromEnvironment(variableName string, defaultValue int) (int, error) {
	value := os.Getenv(variableName)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, errors.Wrap(err, variableName)
	}
	return parsed, nil
}

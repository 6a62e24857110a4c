package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfiguration = `
device:
  hardware_address: "24:0a:c4:12:34:56"
http:
  api_key: TESTKEY
  strict_status: true
broker:
  protocol: amqp
  host: rabbit.local
  port: 5672
  topic: desk.readings
publish_period: 5s
log_level: debug
`

func writeConfiguration(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "smartdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestConfigurationParserKeepsDefaultsForMissingFields(t *testing.T) {
	path := writeConfiguration(t, testConfiguration)
	conf, err := ConfigurationParser(path, entities.DefaultAgentConfig())
	require.NoError(t, err)

	assert.Equal(t, "TESTKEY", conf.HTTP.APIKey)
	assert.True(t, conf.HTTP.StrictStatus)
	assert.Equal(t, "amqp", conf.Broker.Protocol)
	assert.Equal(t, 5*time.Second, conf.PublishPeriod)
	assert.Equal(t, "http://api.thingspeak.com/update", conf.HTTP.URL)
	assert.Equal(t, 512, conf.Broker.MaxPayload)
	assert.Equal(t, 2*time.Second, conf.Broker.RetryDelay)
}

func TestConfigurationParserWhenFileMissingThenError(t *testing.T) {
	_, err := ConfigurationParser(filepath.Join(t.TempDir(), "nope.yaml"), entities.DefaultAgentConfig())
	assert.Error(t, err)
}

func TestLoadConfigurationWhenFileMissingThenDefaults(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultAgentConfig(), conf)
}

func TestLoadConfigurationEnvironmentOverridesFile(t *testing.T) {
	path := writeConfiguration(t, testConfiguration)
	t.Setenv("SMARTDESK_BROKER_PROTOCOL", "mqtt")
	t.Setenv("SMARTDESK_BROKER_PORT", "8883")
	t.Setenv("SMARTDESK_PUBLISH_PERIOD", "1m")
	t.Setenv("SMARTDESK_HTTP_STRICT_STATUS", "false")

	conf, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, "mqtt", conf.Broker.Protocol)
	assert.Equal(t, 8883, conf.Broker.Port)
	assert.Equal(t, time.Minute, conf.PublishPeriod)
	assert.False(t, conf.HTTP.StrictStatus)
	assert.Equal(t, "rabbit.local", conf.Broker.Host)
}

func TestLoadConfigurationWhenInvalidEnvironmentThenError(t *testing.T) {
	t.Setenv("SMARTDESK_BROKER_PORT", "port")
	_, err := LoadConfiguration("")
	assert.Error(t, err)
}

func TestLoadConfigurationWhenMalformedFileThenError(t *testing.T) {
	path := writeConfiguration(t, "broker: [")
	_, err := LoadConfiguration(path)
	assert.Error(t, err)
}

func TestValidateRejectsUnknownProtocol(t *testing.T) {
	conf := entities.DefaultAgentConfig()
	conf.Broker.Protocol = "stomp"
	assert.Error(t, Validate(conf))
}

func TestValidateRejectsNonPositivePeriod(t *testing.T) {
	conf := entities.DefaultAgentConfig()
	conf.PublishPeriod = 0
	assert.Error(t, Validate(conf))
}

func TestGetValueFromEnvironmentVariableWhenVariableExistsThenReturnValue(t *testing.T) {
	variableName := "TEST_VARIABLE"
	expectedVariableValue := "0"
	defaultValue := "1"
	t.Setenv(variableName, expectedVariableValue)
	actualVariableValue := GetValueFromEnvironmentVariable(variableName, defaultValue)
	assert.Equal(t, expectedVariableValue, actualVariableValue)
}

func TestGetValueFromEnvironmentVariableWhenVariableNotExistsThenReturnDefaultValue(t *testing.T) {
	variableName := "TEST_VARIABLE_2"
	defaultValue := "1"
	actualVariableValue := GetValueFromEnvironmentVariable(variableName, defaultValue)
	assert.Equal(t, defaultValue, actualVariableValue)
}

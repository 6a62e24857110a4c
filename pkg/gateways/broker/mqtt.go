package broker

import (
	"context"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/pkg/errors"
)

const (
	qosAtMostOnce   byte = 0
	notRetained          = false
	disconnectQuiet uint = 250
)

// MQTTSession is the default transport. paho runs the keepalive in its own
// goroutines; connection loss reaches the agent loop through the lost channel.
type MQTTSession struct {
	brokerURL string
	username  string
	password  string
	client    mqtt.Client
	lost      chan error
	newClient func(*mqtt.ClientOptions) mqtt.Client
}

func NewMQTTSession(conf entities.BrokerConfig) *MQTTSession {
	return &MQTTSession{
		brokerURL: fmt.Sprintf("tcp://%s:%d", conf.Host, conf.Port),
		username:  conf.Username,
		password:  conf.Password,
		lost:      make(chan error, 1),
		newClient: mqtt.NewClient,
	}
}

func (s *MQTTSession) options(clientID string) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions().
		AddBroker(s.brokerURL).
		SetClientID(clientID).
		SetKeepAlive(keepAlive).
		SetConnectTimeout(connectTimeout).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetConnectionLostHandler(s.onConnectionLost)
	if s.username != "" {
		opts.SetUsername(s.username).SetPassword(s.password)
	}
	return opts
}

func (s *MQTTSession) onConnectionLost(_ mqtt.Client, err error) {
	select {
	case s.lost <- err:
	default:
	}
}

func (s *MQTTSession) Connect(clientID string) error {
	if s.client != nil {
		s.client.Disconnect(0)
	}
	s.drainLost()

	client := s.newClient(s.options(clientID))
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		reasonCode := unknownReasonCode
		if connectToken, ok := token.(*mqtt.ConnectToken); ok {
			reasonCode = int(connectToken.ReturnCode())
		}
		return &ConnectError{ReasonCode: reasonCode, Err: err}
	}

	s.client = client
	return nil
}

func (s *MQTTSession) IsConnected() bool {
	return s.client != nil && s.client.IsConnectionOpen()
}

// Service reports a connection loss signalled since the previous call.
func (s *MQTTSession) Service() error {
	select {
	case err := <-s.lost:
		if err == nil {
			return errSessionLost
		}
		return errors.Wrap(err, errSessionLost.Error())
	default:
		return nil
	}
}

// Publish hands the payload to paho at QoS 0 without waiting for the write.
// Errors already known to the token, such as a closed connection, are returned.
func (s *MQTTSession) Publish(_ context.Context, topic string, payload []byte) error {
	if s.client == nil {
		return ErrNotConnected
	}
	token := s.client.Publish(topic, qosAtMostOnce, notRetained, payload)
	select {
	case <-token.Done():
		return token.Error()
	default:
		return nil
	}
}

func (s *MQTTSession) Close() {
	if s.client != nil {
		s.client.Disconnect(disconnectQuiet)
		s.client = nil
	}
}

func (s *MQTTSession) drainLost() {
	for {
		select {
		case <-s.lost:
		default:
			return
		}
	}
}

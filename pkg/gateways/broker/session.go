package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/pkg/errors"
)

const (
	unknownReasonCode = -1
	keepAlive         = 15 * time.Second
	connectTimeout    = 10 * time.Second
)

var (
	ErrNotConnected     = errors.New("broker session not connected")
	ErrPayloadTooLarge  = errors.New("payload exceeds broker buffer")
	errSessionLost      = errors.New("broker session lost")
	errUnknownTransport = errors.New("unknown broker protocol")
)

// Session is one broker transport. Connect is only called while IsConnected
// reports false, and Service is called on every tick of the agent loop.
type Session interface {
	Connect(clientID string) error
	IsConnected() bool
	Service() error
	Publish(ctx context.Context, topic string, payload []byte) error
	Close()
}

// ConnectError carries the reason code the broker (or client library) gave
// for refusing the session.
type ConnectError struct {
	ReasonCode int
	Err        error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("broker connect refused (rc=%d): %v", e.ReasonCode, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// ReasonCode extracts the broker reason code from a connect error.
func ReasonCode(err error) int {
	var connectErr *ConnectError
	if errors.As(err, &connectErr) {
		return connectErr.ReasonCode
	}
	return unknownReasonCode
}

// NewSession builds the transport selected by conf.Protocol.
func NewSession(conf entities.BrokerConfig) (Session, error) {
	switch conf.Protocol {
	case entities.BrokerProtocolMQTT, "":
		return NewMQTTSession(conf), nil
	case entities.BrokerProtocolAMQP:
		return NewAMQPSession(conf), nil
	}
	return nil, errors.Wrap(errUnknownTransport, conf.Protocol)
}

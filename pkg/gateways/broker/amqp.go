package broker

import (
	"context"
	"net"
	"net/url"
	"strconv"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeSamples   = "smartdesk"
	exchangeTypeTopic = "topic"
	durable           = true
	deleteWhenUnused  = false
	internal          = false
	noWait            = false
	mandatory         = false
	immediate         = false
)

// AMQPSession publishes samples to a topic exchange, using the broker topic as
// routing key. The session name is announced as the connection_name property.
type AMQPSession struct {
	url     string
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  chan *amqp.Error
	dial    func(url string, config amqp.Config) (*amqp.Connection, error)
}

func NewAMQPSession(conf entities.BrokerConfig) *AMQPSession {
	return &AMQPSession{
		url:  amqpURL(conf),
		dial: amqp.DialConfig,
	}
}

func amqpURL(conf entities.BrokerConfig) string {
	u := url.URL{
		Scheme: "amqp",
		Host:   net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port)),
		Path:   "/",
	}
	if conf.Username != "" {
		u.User = url.UserPassword(conf.Username, conf.Password)
	}
	return u.String()
}

func (a *AMQPSession) Connect(clientID string) error {
	a.Close()

	conn, err := a.dial(a.url, amqp.Config{
		Heartbeat:  keepAlive,
		Properties: amqp.Table{"connection_name": clientID},
		Dial:       amqp.DefaultDial(connectTimeout),
	})
	if err != nil {
		return &ConnectError{ReasonCode: amqpReplyCode(err), Err: err}
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return &ConnectError{ReasonCode: amqpReplyCode(err), Err: errors.Wrap(err, "open channel")}
	}

	err = channel.ExchangeDeclare(
		exchangeSamples,
		exchangeTypeTopic,
		durable,
		deleteWhenUnused,
		internal,
		noWait,
		nil, // arguments
	)
	if err != nil {
		conn.Close()
		return &ConnectError{ReasonCode: amqpReplyCode(err), Err: errors.Wrap(err, "declare exchange")}
	}

	a.conn = conn
	a.channel = channel
	a.closed = conn.NotifyClose(make(chan *amqp.Error, 1))
	return nil
}

func amqpReplyCode(err error) int {
	var amqpErr *amqp.Error
	if errors.As(err, &amqpErr) {
		return amqpErr.Code
	}
	return unknownReasonCode
}

func (a *AMQPSession) IsConnected() bool {
	return a.conn != nil && !a.conn.IsClosed()
}

// Service drains the close notification of the current connection.
func (a *AMQPSession) Service() error {
	if a.closed == nil {
		return nil
	}
	select {
	case reason, ok := <-a.closed:
		a.closed = nil
		if !ok || reason == nil {
			return errSessionLost
		}
		return errors.Wrap(reason, errSessionLost.Error())
	default:
		return nil
	}
}

func (a *AMQPSession) Publish(ctx context.Context, topic string, payload []byte) error {
	if a.channel == nil {
		return ErrNotConnected
	}
	return a.channel.PublishWithContext(ctx,
		exchangeSamples,
		topic,
		mandatory,
		immediate,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Transient,
			Body:         payload,
		},
	)
}

func (a *AMQPSession) Close() {
	if a.channel != nil {
		a.channel.Close()
		a.channel = nil
	}
	if a.conn != nil && !a.conn.IsClosed() {
		a.conn.Close()
	}
	a.conn = nil
	a.closed = nil
}

package broker

import (
	"context"
	"encoding/json"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/pkg/errors"
)

// Messaging is the part of the session manager the publisher needs.
type Messaging interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

type Publisher interface {
	PublishSample(ctx context.Context, sample entities.Sample) error
}

type msgPublisher struct {
	broker     Messaging
	topic      string
	maxPayload int
}

func NewMsgPublisher(broker Messaging, topic string, maxPayload int) Publisher {
	return &msgPublisher{broker: broker, topic: topic, maxPayload: maxPayload}
}

// EncodeSample renders the compact JSON payload, refusing anything that
// would not fit in maxPayload bytes.
func EncodeSample(sample entities.Sample, maxPayload int) ([]byte, error) {
	body, err := json.Marshal(NewSampleMessage(sample))
	if err != nil {
		return nil, errors.Wrap(err, "encode sample")
	}
	if len(body) > maxPayload {
		return nil, errors.Wrapf(ErrPayloadTooLarge, "%d > %d bytes", len(body), maxPayload)
	}
	return body, nil
}

func (mp *msgPublisher) PublishSample(ctx context.Context, sample entities.Sample) error {
	body, err := EncodeSample(sample, mp.maxPayload)
	if err != nil {
		return err
	}
	return mp.broker.Publish(ctx, mp.topic, body)
}

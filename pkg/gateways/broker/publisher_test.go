package broker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/gateways/broker/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTopic = "smartdesk/medicoes"

type messagingStub struct {
	topic   string
	payload []byte
	err     error
}

func (m *messagingStub) Publish(_ context.Context, topic string, payload []byte) error {
	m.topic = topic
	m.payload = payload
	return m.err
}

func createFakeSample() entities.Sample {
	return entities.Sample{
		DeviceID:      "563412C40A24",
		Temperature:   24.5,
		Illuminance:   379,
		SeatedMinutes: 20,
		ScreenHeight:  115.75,
		Posture:       entities.PostureLeaning,
	}
}

func TestEncodeSampleFieldOrder(t *testing.T) {
	body, err := EncodeSample(createFakeSample(), 512)
	require.NoError(t, err)

	expected := `{"uuid":"563412C40A24","temperatura":24.5,"iluminacao":379,"tempo_sentado":20,` +
		`"altura_tela":115.75,"postura_id":1,"postura_desc":"INCLINADA"}`
	assert.Equal(t, expected, string(body))
}

func TestEncodeSampleWhenTooLargeThenError(t *testing.T) {
	sample := createFakeSample()
	sample.DeviceID = strings.Repeat("F", 600)

	_, err := EncodeSample(sample, 512)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestPublishSample(t *testing.T) {
	stub := &messagingStub{}
	publisher := NewMsgPublisher(stub, testTopic, 512)

	err := publisher.PublishSample(context.Background(), createFakeSample())
	require.NoError(t, err)
	assert.Equal(t, testTopic, stub.topic)

	var message SampleMessage
	require.NoError(t, json.Unmarshal(stub.payload, &message))
	assert.Equal(t, NewSampleMessage(createFakeSample()), message)
}

func TestPublishSampleWhenTooLargeThenNothingSent(t *testing.T) {
	stub := &messagingStub{}
	publisher := NewMsgPublisher(stub, testTopic, 16)

	err := publisher.PublishSample(context.Background(), createFakeSample())
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Nil(t, stub.payload)
}

func TestPublishSampleThroughManager(t *testing.T) {
	session := new(mocks.SessionMock)
	session.On("IsConnected").Return(true)
	session.On("Publish", mock.Anything, testTopic, mock.AnythingOfType("[]uint8")).Return(nil)

	manager, _, _ := newTestManager(session)
	publisher := NewMsgPublisher(manager, testTopic, 512)

	assert.NoError(t, publisher.PublishSample(context.Background(), createFakeSample()))
	session.AssertExpectations(t)
}

func TestPublishSampleReturnsBrokerError(t *testing.T) {
	stub := &messagingStub{err: errors.New("rejected")}
	publisher := NewMsgPublisher(stub, testTopic, 512)

	assert.Error(t, publisher.PublishSample(context.Background(), createFakeSample()))
}

func TestNewSampleMessageLabels(t *testing.T) {
	sample := createFakeSample()
	for posture, label := range map[entities.Posture]string{
		entities.PostureCorrect:  "CORRETA",
		entities.PostureLeaning:  "INCLINADA",
		entities.PostureSlouched: "CURVADO",
	} {
		sample.Posture = posture
		message := NewSampleMessage(sample)
		assert.Equal(t, posture.Code(), message.PostureID)
		assert.Equal(t, label, message.PostureDesc)
	}
}

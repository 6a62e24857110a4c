package broker

import "github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"

// SampleMessage is the JSON document the Node-RED flow reads. Field order
// follows the struct order.
type SampleMessage struct {
	UUID          string  `json:"uuid"`
	Temperature   float64 `json:"temperatura"`
	Illuminance   int     `json:"iluminacao"`
	SeatedMinutes int     `json:"tempo_sentado"`
	ScreenHeight  float64 `json:"altura_tela"`
	PostureID     int     `json:"postura_id"`
	PostureDesc   string  `json:"postura_desc"`
}

func NewSampleMessage(sample entities.Sample) SampleMessage {
	return SampleMessage{
		UUID:          sample.DeviceID,
		Temperature:   sample.Temperature,
		Illuminance:   sample.Illuminance,
		SeatedMinutes: sample.SeatedMinutes,
		ScreenHeight:  sample.ScreenHeight,
		PostureID:     sample.Posture.Code(),
		PostureDesc:   sample.Posture.Label(),
	}
}

package agent

import (
	"context"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/gateways/broker"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/gateways/thingspeak"
	"github.com/sirupsen/logrus"
)

type Uploader interface {
	Upload(ctx context.Context, sample entities.Sample) thingspeak.Result
}

// Report holds the outcome of both channels for one sample.
type Report struct {
	HTTP   thingspeak.Result
	Broker error
}

// DualPublisher ships a sample over HTTP and then over the broker. The two
// paths never depend on each other's outcome.
type DualPublisher struct {
	uploader  Uploader
	publisher broker.Publisher
	metrics   *Metrics
	log       *logrus.Entry
}

func NewDualPublisher(uploader Uploader, publisher broker.Publisher, metrics *Metrics, log *logrus.Entry) *DualPublisher {
	return &DualPublisher{uploader: uploader, publisher: publisher, metrics: metrics, log: log}
}

func (p *DualPublisher) Publish(ctx context.Context, sample entities.Sample) Report {
	report := Report{
		HTTP: p.uploader.Upload(ctx, sample),
	}
	p.metrics.httpUpload(report.HTTP.OK())
	if report.HTTP.OK() {
		p.log.WithField("code", report.HTTP.StatusCode).Info("ThingSpeak (HTTP): OK")
	} else {
		p.log.WithFields(logrus.Fields{
			"code":  report.HTTP.StatusCode,
			"error": report.HTTP.Err,
		}).Error("ThingSpeak (HTTP): failed")
	}

	report.Broker = p.publisher.PublishSample(ctx, sample)
	p.metrics.brokerPublish(report.Broker == nil)
	if report.Broker == nil {
		p.log.WithFields(logrus.Fields{
			"uuid":        sample.DeviceID,
			"temperature": sample.Temperature,
			"lux":         sample.Illuminance,
			"seated":      sample.SeatedMinutes,
			"height":      sample.ScreenHeight,
			"posture":     sample.Posture,
		}).Info("Broker (JSON): sent")
	} else {
		p.log.WithError(report.Broker).Error("Broker (JSON): failed")
	}
	return report
}

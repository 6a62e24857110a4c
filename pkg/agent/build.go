package agent

import (
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/gateways/broker"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/gateways/link"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/gateways/thingspeak"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/identity"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/logging"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/simulation"
	"github.com/pkg/errors"
)

// Build wires a production agent from its configuration. Resolving the
// device identity is the only step that touches the host.
func Build(conf entities.AgentConfig, logs *logging.Logrus) (*Agent, error) {
	id, err := identity.Resolve(conf.Device)
	if err != nil {
		return nil, errors.Wrap(err, "resolve device identity")
	}

	session, err := broker.NewSession(conf.Broker)
	if err != nil {
		return nil, err
	}

	metrics := NewMetrics()
	linkManager := link.NewManager(link.InterfaceStatus{Name: conf.Device.Interface}, conf.Link.PollInterval, logs.Get("link")).
		WithObserver(metrics)
	sessionManager := broker.NewManager(session, id, conf.Broker.RetryDelay, logs.Get("broker")).
		WithObserver(metrics)
	publisher := NewDualPublisher(
		thingspeak.NewUploader(conf.HTTP),
		broker.NewMsgPublisher(sessionManager, conf.Broker.Topic, conf.Broker.MaxPayload),
		metrics,
		logs.Get("publisher"),
	)

	return New(Config{
		DeviceID:      id.DeviceIdentity(),
		Generator:     simulation.NewGenerator(0, simulation.DefaultPhaseStep),
		Link:          linkManager,
		Session:       sessionManager,
		Publisher:     publisher,
		Metrics:       metrics,
		PublishPeriod: conf.PublishPeriod,
		LoopInterval:  conf.LoopInterval,
		Log:           logs.Get("agent"),
	}), nil
}

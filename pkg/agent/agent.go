// Package agent runs the desk control loop: it keeps the link and the broker
// session up, services the session on every tick and publishes one sample
// per period over both channels.
package agent

import (
	"context"
	"time"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/simulation"
	"github.com/sirupsen/logrus"
)

type LinkManager interface {
	Connected() bool
	EnsureConnected(ctx context.Context) error
}

type SessionManager interface {
	Connected() bool
	EnsureSession(ctx context.Context) error
	ServiceSession()
	Close()
}

type Publisher interface {
	Publish(ctx context.Context, sample entities.Sample) Report
}

type Config struct {
	DeviceID      string
	Generator     *simulation.Generator
	Link          LinkManager
	Session       SessionManager
	Publisher     Publisher
	Metrics       *Metrics
	PublishPeriod time.Duration
	LoopInterval  time.Duration
	Clock         func() time.Time
	Log           *logrus.Entry
}

// Agent owns all mutable loop state. Only the goroutine running Run or Tick
// may touch it.
type Agent struct {
	deviceID    string
	generator   *simulation.Generator
	link        LinkManager
	session     SessionManager
	publisher   Publisher
	metrics     *Metrics
	period      time.Duration
	interval    time.Duration
	lastPublish time.Time
	now         func() time.Time
	chain       tickHandler
	log         *logrus.Entry
}

// New creates an agent whose first publish happens one period from now.
func New(conf Config) *Agent {
	clock := conf.Clock
	if clock == nil {
		clock = time.Now
	}
	metrics := conf.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	a := &Agent{
		deviceID:  conf.DeviceID,
		generator: conf.Generator,
		link:      conf.Link,
		session:   conf.Session,
		publisher: conf.Publisher,
		metrics:   metrics,
		period:    conf.PublishPeriod,
		interval:  conf.LoopInterval,
		now:       clock,
		log:       conf.Log,
	}
	a.lastPublish = a.now()
	a.chain = newTickChain(a)
	return a
}

// Tick runs one loop iteration. Link and session re-establishment block;
// the returned error is non-nil only when ctx was cancelled meanwhile.
func (a *Agent) Tick(ctx context.Context) error {
	return a.chain.execute(ctx)
}

// Run ticks every loop interval until ctx is cancelled.
func (a *Agent) Run(ctx context.Context) error {
	a.log.WithFields(logrus.Fields{
		"device":  a.deviceID,
		"period":  a.period,
		"link":    entities.StateOf(a.link.Connected()),
		"session": entities.StateOf(a.session.Connected()),
	}).Info("SmartDesk agent started")

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		if err := a.Tick(ctx); err != nil && ctx.Err() == nil {
			a.log.WithError(err).Error("Tick failed")
		}
		select {
		case <-ctx.Done():
			a.session.Close()
			a.log.WithField("session", entities.StateOf(a.session.Connected())).Info("SmartDesk agent stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (a *Agent) publishCycle(ctx context.Context) {
	sample := a.generator.NextSample(a.deviceID)
	a.metrics.sampleGenerated(a.generator.Phase())
	a.publisher.Publish(ctx, sample)
	a.log.Debug("----------------------------------")
}

func (a *Agent) Metrics() *Metrics {
	return a.metrics
}

// Phase exposes the simulation phase for diagnostics.
func (a *Agent) Phase() float64 {
	return a.generator.Phase()
}

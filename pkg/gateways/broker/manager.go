package broker

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Namer yields the session name for each connect attempt.
type Namer interface {
	SessionName() string
}

// Observer is notified about session transitions, the agent feeds metrics from it.
type Observer interface {
	SessionReconnected()
	SessionLost()
}

// Manager keeps the broker session up. Reconnection uses a fixed delay
// between attempts and never gives up.
type Manager struct {
	session  Session
	namer    Namer
	newDelay func() backoff.BackOff
	observer Observer
	log      *logrus.Entry
}

func NewManager(session Session, namer Namer, retryDelay time.Duration, log *logrus.Entry) *Manager {
	return &Manager{
		session: session,
		namer:   namer,
		newDelay: func() backoff.BackOff {
			return backoff.NewConstantBackOff(retryDelay)
		},
		log: log,
	}
}

// WithBackOff replaces the retry delay, tests use a zero backoff.
func (m *Manager) WithBackOff(newDelay func() backoff.BackOff) *Manager {
	m.newDelay = newDelay
	return m
}

func (m *Manager) WithObserver(observer Observer) *Manager {
	m.observer = observer
	return m
}

func (m *Manager) Connected() bool {
	return m.session.IsConnected()
}

// EnsureSession blocks until the session is up or ctx is cancelled. The
// session name is derived again on every attempt.
func (m *Manager) EnsureSession(ctx context.Context) error {
	if m.session.IsConnected() {
		return nil
	}
	// Connect discards pending loss events, so report them first.
	m.ServiceSession()

	attempt := func() error {
		name := m.namer.SessionName()
		m.log.WithField("session", name).Info("Trying broker session")
		if err := m.session.Connect(name); err != nil {
			m.log.WithFields(logrus.Fields{
				"session": name,
				"rc":      ReasonCode(err),
				"error":   err,
			}).Warn("Broker session failed, retrying")
			return err
		}
		m.log.WithField("session", name).Info("Broker session connected")
		return nil
	}

	if err := backoff.Retry(attempt, backoff.WithContext(m.newDelay(), ctx)); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return errors.Wrap(err, "waiting for broker session")
	}
	if m.observer != nil {
		m.observer.SessionReconnected()
	}
	return nil
}

// ServiceSession lets the transport process protocol traffic and reports a
// loss detected since the last tick. It never blocks.
func (m *Manager) ServiceSession() {
	if err := m.session.Service(); err != nil {
		m.log.WithError(err).Warn("Broker session lost")
		if m.observer != nil {
			m.observer.SessionLost()
		}
	}
}

// Publish sends payload on the current session without waiting for an ack.
func (m *Manager) Publish(ctx context.Context, topic string, payload []byte) error {
	if !m.session.IsConnected() {
		return ErrNotConnected
	}
	if err := m.session.Publish(ctx, topic, payload); err != nil {
		return errors.Wrapf(err, "publish to %s", topic)
	}
	return nil
}

func (m *Manager) Close() {
	m.session.Close()
}

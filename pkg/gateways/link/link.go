// Package link keeps the network link of the desk up. Reconnection blocks
// the caller until the link reports up again.
package link

import (
	"context"
	"net"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var errLinkDown = errors.New("link down")

// Status is a passive query of the link state.
type Status interface {
	Up() bool
}

// InterfaceStatus reports the link as up when the interface is up and holds
// at least one unicast address. An empty Name accepts any non-loopback interface.
type InterfaceStatus struct {
	Name string
}

func (s InterfaceStatus) Up() bool {
	if s.Name != "" {
		iface, err := net.InterfaceByName(s.Name)
		if err != nil {
			return false
		}
		return interfaceUp(*iface)
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback == 0 && interfaceUp(iface) {
			return true
		}
	}
	return false
}

func interfaceUp(iface net.Interface) bool {
	if iface.Flags&net.FlagUp == 0 {
		return false
	}
	addrs, err := iface.Addrs()
	return err == nil && len(addrs) > 0
}

// Observer is notified when EnsureConnected had to bring the link back.
type Observer interface {
	LinkReconnected()
}

type Manager struct {
	status   Status
	newDelay func() backoff.BackOff
	observer Observer
	log      *logrus.Entry
}

// NewManager polls status every pollInterval while the link is down.
func NewManager(status Status, pollInterval time.Duration, log *logrus.Entry) *Manager {
	return &Manager{
		status: status,
		newDelay: func() backoff.BackOff {
			return backoff.NewConstantBackOff(pollInterval)
		},
		log: log,
	}
}

// WithBackOff replaces the poll delay, tests use a zero backoff.
func (m *Manager) WithBackOff(newDelay func() backoff.BackOff) *Manager {
	m.newDelay = newDelay
	return m
}

func (m *Manager) WithObserver(observer Observer) *Manager {
	m.observer = observer
	return m
}

func (m *Manager) Connected() bool {
	return m.status.Up()
}

// EnsureConnected returns once the link is up. There are no retry limits:
// the only other way out is ctx being cancelled.
func (m *Manager) EnsureConnected(ctx context.Context) error {
	if m.status.Up() {
		return nil
	}

	m.log.Info("Connecting network link")
	attempts := 0
	poll := func() error {
		attempts++
		if m.status.Up() {
			return nil
		}
		return errLinkDown
	}
	notify := func(err error, next time.Duration) {
		m.log.WithField("attempt", attempts).Debug(".")
	}

	if err := backoff.RetryNotify(poll, backoff.WithContext(m.newDelay(), ctx), notify); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return errors.Wrap(err, "waiting for network link")
	}

	m.log.WithField("attempts", attempts).Info("Network link connected")
	if m.observer != nil {
		m.observer.LinkReconnected()
	}
	return nil
}

package agent

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultOK    = "ok"
	resultError = "error"

	shutdownTimeout = 5 * time.Second
)

// Metrics holds the agent counters on a registry of its own, so several
// agents (or tests) can live in one process.
type Metrics struct {
	registry          *prometheus.Registry
	samples           prometheus.Counter
	httpUploads       *prometheus.CounterVec
	brokerPublishes   *prometheus.CounterVec
	linkReconnects    prometheus.Counter
	sessionReconnects prometheus.Counter
	sessionLosses     prometheus.Counter
	phase             prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartdesk_samples_generated_total",
			Help: "Samples produced by the simulator.",
		}),
		httpUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartdesk_http_uploads_total",
			Help: "ThingSpeak uploads by result.",
		}, []string{"result"}),
		brokerPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartdesk_broker_publishes_total",
			Help: "Broker publishes by result.",
		}, []string{"result"}),
		linkReconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartdesk_link_reconnects_total",
			Help: "Times the network link had to be re-established.",
		}),
		sessionReconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartdesk_session_reconnects_total",
			Help: "Broker sessions established, including the first one.",
		}),
		sessionLosses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartdesk_session_losses_total",
			Help: "Broker session losses detected while servicing the session.",
		}),
		phase: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smartdesk_simulation_phase_radians",
			Help: "Current value of the simulation phase accumulator.",
		}),
	}
	m.registry.MustRegister(m.samples, m.httpUploads, m.brokerPublishes,
		m.linkReconnects, m.sessionReconnects, m.sessionLosses, m.phase)
	return m
}

func (m *Metrics) LinkReconnected()    { m.linkReconnects.Inc() }
func (m *Metrics) SessionReconnected() { m.sessionReconnects.Inc() }
func (m *Metrics) SessionLost()        { m.sessionLosses.Inc() }

func (m *Metrics) sampleGenerated(phase float64) {
	m.samples.Inc()
	m.phase.Set(phase)
}

func (m *Metrics) httpUpload(ok bool) {
	m.httpUploads.WithLabelValues(resultLabel(ok)).Inc()
}

func (m *Metrics) brokerPublish(ok bool) {
	m.brokerPublishes.WithLabelValues(resultLabel(ok)).Inc()
}

func resultLabel(ok bool) string {
	if ok {
		return resultOK
	}
	return resultError
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return errors.Wrap(err, "metrics server")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

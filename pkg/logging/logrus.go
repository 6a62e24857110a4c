package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

const defaultLevel = logrus.InfoLevel

// Logrus builds the per-component loggers of the agent. All components
// share one underlying logger so level and output stay consistent.
type Logrus struct {
	base *logrus.Logger
}

// NewLogrus creates a new logrus factory. An unknown level falls back to info.
func NewLogrus(level string, output io.Writer) *Logrus {
	base := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = defaultLevel
	}
	base.SetLevel(parsed)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	base.SetOutput(output)

	return &Logrus{base: base}
}

// Get returns a logrus entry tagged with the component name
func (l *Logrus) Get(context string) *logrus.Entry {
	return l.base.WithFields(logrus.Fields{
		"Context": context,
	})
}

// Logger exposes the shared logger, mainly so tests can attach hooks.
func (l *Logrus) Logger() *logrus.Logger {
	return l.base
}

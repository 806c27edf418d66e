// Package appenv holds the services shared by every pane of one application instance.
package appenv

import (
	"github.com/filetug/twinpane/pkg/events"
	"github.com/filetug/twinpane/pkg/metrics"
	"go.uber.org/zap"
)

// Environment is constructed once in main and passed to the components that need it.
type Environment struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Events  *events.Registry
}

// New initializes an environment. A nil logger is replaced by a no-op one.
// Metrics may be nil, in which case nothing is recorded.
func New(logger *zap.Logger, m *metrics.Metrics) *Environment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Environment{
		Logger:  logger,
		Metrics: m,
		Events:  events.NewRegistry(logger.Named("events")),
	}
}

// Close tears the environment down: subscriptions are dropped and logs flushed.
func (e *Environment) Close() {
	e.Events.Close()
	_ = e.Logger.Sync()
}

// Package metrics provides Prometheus metrics for directory scans, watchers and transfers.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess   = "success"
	ResultError     = "error"
	ResultSkipped   = "skipped"
	ResultCancelled = "cancelled"
	ResultStale     = "stale"
)

// Metrics holds the collectors of one registry. A nil *Metrics records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	scansTotal         *prometheus.CounterVec
	scanDuration       prometheus.Histogram
	watchEventsTotal   prometheus.Counter
	transferItemsTotal *prometheus.CounterVec
	transferBatches    *prometheus.CounterVec
}

// New registers the collectors with reg. A nil reg gets a fresh private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,

		// Directory scans
		scansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "twinpane_scans_total",
				Help: "Total number of directory scans",
			},
			[]string{"result"},
		),
		scanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "twinpane_scan_duration_seconds",
				Help:    "Directory scan duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		// Watchers
		watchEventsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "twinpane_watch_events_total",
				Help: "Total number of directory change notifications delivered",
			},
		),

		// Transfers
		transferItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "twinpane_transfer_items_total",
				Help: "Total number of items processed by drop operations",
			},
			[]string{"op", "result"},
		),
		transferBatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "twinpane_transfer_batches_total",
				Help: "Total number of finished drop operations",
			},
			[]string{"op", "result"},
		),
	}
}

// Handler returns the HTTP handler exposing this registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// RecordScan records a finished directory scan.
func (m *Metrics) RecordScan(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.scansTotal.WithLabelValues(result).Inc()
	m.scanDuration.Observe(duration.Seconds())
}

// RecordStaleScan counts a scan whose result was superseded before publishing.
// Its duration is not observed.
func (m *Metrics) RecordStaleScan() {
	if m == nil {
		return
	}
	m.scansTotal.WithLabelValues(ResultStale).Inc()
}

// RecordWatchEvent records a change notification.
func (m *Metrics) RecordWatchEvent() {
	if m == nil {
		return
	}
	m.watchEventsTotal.Inc()
}

// RecordTransferItem records the outcome of one item of a drop.
func (m *Metrics) RecordTransferItem(op, result string) {
	if m == nil {
		return
	}
	m.transferItemsTotal.WithLabelValues(op, result).Inc()
}

// RecordTransferBatch records the outcome of a whole drop.
func (m *Metrics) RecordTransferBatch(op, result string) {
	if m == nil {
		return
	}
	m.transferBatches.WithLabelValues(op, result).Inc()
}

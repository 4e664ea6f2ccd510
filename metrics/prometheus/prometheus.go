package prometheusmetrics

import (
	"strings"

	"github.com/prebid/prebid-bidadjustments/config"
	"github.com/prebid/prebid-bidadjustments/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics defines the Prometheus metrics backing the MetricsEngine implementation.
type Metrics struct {
	Registry *prometheus.Registry

	bidAdjustmentInvalid *prometheus.CounterVec
	bidsAdjusted         *prometheus.CounterVec
	bidsDropped          *prometheus.CounterVec
	floorAdjustmentError *prometheus.CounterVec
}

const (
	bidderLabel = "bidder"
	reasonLabel = "reason"
	sourceLabel = "source"
)

// NewMetrics initializes a new Prometheus metrics instance on a private registry.
func NewMetrics(cfg config.PrometheusMetrics) *Metrics {
	metrics := Metrics{}
	metrics.Registry = prometheus.NewRegistry()

	metrics.bidAdjustmentInvalid = newCounter(cfg, metrics.Registry,
		"bid_adjustment_invalid",
		"Count of bid adjustment configurations discarded by validation, by source.",
		[]string{sourceLabel})

	metrics.bidsAdjusted = newCounter(cfg, metrics.Registry,
		"bid_adjustment_applied",
		"Count of bids matched by at least one bid adjustment rule.",
		[]string{bidderLabel})

	metrics.bidsDropped = newCounter(cfg, metrics.Registry,
		"bid_adjustment_dropped_bids",
		"Count of bids dropped while adjusting their price.",
		[]string{bidderLabel, reasonLabel})

	metrics.floorAdjustmentError = newCounter(cfg, metrics.Registry,
		"floor_adjustment_errors",
		"Count of floors which could not be projected through bid adjustments.",
		[]string{bidderLabel})

	preloadLabelValues(&metrics)

	return &metrics
}

func newCounter(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string) *prometheus.CounterVec {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounterVec(opts, labels)
	registry.MustRegister(counter)
	return counter
}

func preloadLabelValues(m *Metrics) {
	for _, source := range metrics.AdjustmentSources() {
		m.bidAdjustmentInvalid.With(prometheus.Labels{sourceLabel: string(source)})
	}
}

func (m *Metrics) RecordBidAdjustmentInvalid(source metrics.AdjustmentSource) {
	m.bidAdjustmentInvalid.With(prometheus.Labels{
		sourceLabel: string(source),
	}).Inc()
}

func (m *Metrics) RecordBidAdjusted(bidder string) {
	m.bidsAdjusted.With(prometheus.Labels{
		bidderLabel: strings.ToLower(bidder),
	}).Inc()
}

func (m *Metrics) RecordBidAdjustmentDroppedBid(bidder string, reason metrics.DroppedBidReason) {
	m.bidsDropped.With(prometheus.Labels{
		bidderLabel: strings.ToLower(bidder),
		reasonLabel: string(reason),
	}).Inc()
}

func (m *Metrics) RecordFloorAdjustmentError(bidder string) {
	m.floorAdjustmentError.With(prometheus.Labels{
		bidderLabel: strings.ToLower(bidder),
	}).Inc()
}

package config

import (
	mainConfig "github.com/prebid/prebid-bidadjustments/config"
	"github.com/prebid/prebid-bidadjustments/metrics"
	prometheusmetrics "github.com/prebid/prebid-bidadjustments/metrics/prometheus"
)

// NewMetricsEngine reads the configuration and returns the appropriate metrics engine
// for this instance.
func NewMetricsEngine(cfg *mainConfig.Configuration) *DetailedMetricsEngine {
	engineList := make(MultiMetricsEngine, 0, 1)
	returnEngine := DetailedMetricsEngine{}

	if cfg != nil && cfg.Metrics.Prometheus.Enabled {
		returnEngine.PrometheusMetrics = prometheusmetrics.NewMetrics(cfg.Metrics.Prometheus)
		engineList = append(engineList, returnEngine.PrometheusMetrics)
	}

	switch len(engineList) {
	case 0:
		returnEngine.MetricsEngine = &metrics.NilMetricsEngine{}
	case 1:
		returnEngine.MetricsEngine = engineList[0]
	default:
		returnEngine.MetricsEngine = &engineList
	}
	return &returnEngine
}

// DetailedMetricsEngine is a MetricsEngine that keeps the concrete Prometheus engine around
// so its registry can be exposed.
type DetailedMetricsEngine struct {
	metrics.MetricsEngine
	PrometheusMetrics *prometheusmetrics.Metrics
}

// MultiMetricsEngine logs metrics to multiple metrics databases.
type MultiMetricsEngine []metrics.MetricsEngine

func (me *MultiMetricsEngine) RecordBidAdjustmentInvalid(source metrics.AdjustmentSource) {
	for _, thisME := range *me {
		thisME.RecordBidAdjustmentInvalid(source)
	}
}

func (me *MultiMetricsEngine) RecordBidAdjusted(bidder string) {
	for _, thisME := range *me {
		thisME.RecordBidAdjusted(bidder)
	}
}

func (me *MultiMetricsEngine) RecordBidAdjustmentDroppedBid(bidder string, reason metrics.DroppedBidReason) {
	for _, thisME := range *me {
		thisME.RecordBidAdjustmentDroppedBid(bidder, reason)
	}
}

func (me *MultiMetricsEngine) RecordFloorAdjustmentError(bidder string) {
	for _, thisME := range *me {
		thisME.RecordFloorAdjustmentError(bidder)
	}
}

package prometheusmetrics

import (
	"testing"

	"github.com/prebid/prebid-bidadjustments/config"
	"github.com/prebid/prebid-bidadjustments/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

var _ metrics.MetricsEngine = (*Metrics)(nil)

func createMetricsForTesting() *Metrics {
	return NewMetrics(config.PrometheusMetrics{
		Namespace: "prebid",
		Subsystem: "server",
	})
}

func TestMetricCountGatekeeping(t *testing.T) {
	m := createMetricsForTesting()

	families, err := m.Registry.Gather()
	assert.NoError(t, err)

	// only the preloaded invalid-config counter is exported before anything is recorded
	assert.Len(t, families, 1)
	assert.Equal(t, "prebid_server_bid_adjustment_invalid", families[0].GetName())
}

func TestRecordBidAdjustmentInvalid(t *testing.T) {
	m := createMetricsForTesting()

	m.RecordBidAdjustmentInvalid(metrics.AdjustmentSourceAccount)
	m.RecordBidAdjustmentInvalid(metrics.AdjustmentSourceAccount)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bidAdjustmentInvalid.With(prometheus.Labels{sourceLabel: "account"})))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.bidAdjustmentInvalid.With(prometheus.Labels{sourceLabel: "request"})))
}

func TestRecordBidderCounters(t *testing.T) {
	m := createMetricsForTesting()

	m.RecordBidAdjusted("BidderA")
	m.RecordBidAdjustmentDroppedBid("bidderA", metrics.DroppedBidReasonCurrencyConversion)
	m.RecordFloorAdjustmentError("bidderB")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.bidsAdjusted.With(prometheus.Labels{bidderLabel: "biddera"})))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bidsDropped.With(prometheus.Labels{
		bidderLabel: "biddera",
		reasonLabel: "currency_conversion",
	})))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.floorAdjustmentError.With(prometheus.Labels{bidderLabel: "bidderb"})))
}

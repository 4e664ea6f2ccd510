package metrics

// NilMetricsEngine implements the MetricsEngine interface where no metrics are actually captured. This is
// used if no metric backend is configured and also for tests.
type NilMetricsEngine struct{}

func (me *NilMetricsEngine) RecordBidAdjustmentInvalid(source AdjustmentSource) {
}

func (me *NilMetricsEngine) RecordBidAdjusted(bidder string) {
}

func (me *NilMetricsEngine) RecordBidAdjustmentDroppedBid(bidder string, reason DroppedBidReason) {
}

func (me *NilMetricsEngine) RecordFloorAdjustmentError(bidder string) {
}

package metrics

import (
	"github.com/stretchr/testify/mock"
)

// MetricsEngineMock is mock for the MetricsEngine interface
type MetricsEngineMock struct {
	mock.Mock
}

// RecordBidAdjustmentInvalid mock
func (me *MetricsEngineMock) RecordBidAdjustmentInvalid(source AdjustmentSource) {
	me.Called(source)
}

// RecordBidAdjusted mock
func (me *MetricsEngineMock) RecordBidAdjusted(bidder string) {
	me.Called(bidder)
}

// RecordBidAdjustmentDroppedBid mock
func (me *MetricsEngineMock) RecordBidAdjustmentDroppedBid(bidder string, reason DroppedBidReason) {
	me.Called(bidder, reason)
}

// RecordFloorAdjustmentError mock
func (me *MetricsEngineMock) RecordFloorAdjustmentError(bidder string) {
	me.Called(bidder)
}

package metrics

// AdjustmentSource is where a bid adjustment configuration came from.
type AdjustmentSource string

const (
	AdjustmentSourceRequest AdjustmentSource = "request"
	AdjustmentSourceAccount AdjustmentSource = "account"
)

// AdjustmentSources returns all possible values of AdjustmentSource
func AdjustmentSources() []AdjustmentSource {
	return []AdjustmentSource{
		AdjustmentSourceRequest,
		AdjustmentSourceAccount,
	}
}

// DroppedBidReason explains why the adjustment stage removed a bid.
type DroppedBidReason string

const (
	DroppedBidReasonCurrencyConversion DroppedBidReason = "currency_conversion"
	DroppedBidReasonAdjustment         DroppedBidReason = "adjustment"
)

// DroppedBidReasons returns all possible values of DroppedBidReason
func DroppedBidReasons() []DroppedBidReason {
	return []DroppedBidReason{
		DroppedBidReasonCurrencyConversion,
		DroppedBidReasonAdjustment,
	}
}

// MetricsEngine is a generic interface to record adjustment metrics into the desired backend.
// Implementations must be safe for concurrent use.
type MetricsEngine interface {
	// RecordBidAdjustmentInvalid counts configurations discarded by validation.
	RecordBidAdjustmentInvalid(source AdjustmentSource)
	// RecordBidAdjusted counts bids which matched at least one rule.
	RecordBidAdjusted(bidder string)
	RecordBidAdjustmentDroppedBid(bidder string, reason DroppedBidReason)
	RecordFloorAdjustmentError(bidder string)
}

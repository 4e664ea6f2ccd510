package floors

import (
	"strings"

	"github.com/prebid/prebid-bidadjustments/bidadjustment"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/shopspring/decimal"
)

// AdjustForFactors divides a floor by the smallest legacy factor that applies to the bidder,
// counting the flat factor and the factor of every candidate media type. Without any the floor
// is returned unchanged.
func AdjustForFactors(floor decimal.Decimal, mediaTypes []string, bidder string, factors *openrtb_ext.ExtRequestBidAdjustmentFactors) decimal.Decimal {
	if factors == nil {
		return floor
	}

	var lowest *decimal.Decimal
	consider := func(factor decimal.Decimal) {
		if !factor.IsPositive() {
			return
		}
		if lowest == nil || factor.LessThan(*lowest) {
			lowest = &factor
		}
	}

	if factor, ok := factors.Factors[normalizeBidder(bidder)]; ok {
		consider(factor)
	}
	for _, mediaType := range mediaTypes {
		if factor, ok := bidadjustment.MediaTypeFactor(factors, mediaType, bidder); ok {
			consider(factor)
		}
	}

	if lowest == nil {
		return floor
	}
	return floor.Div(*lowest).RoundBank(floorPrecision)
}

func normalizeBidder(bidder string) string {
	return strings.ToLower(bidder)
}

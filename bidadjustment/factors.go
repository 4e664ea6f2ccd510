package bidadjustment

import (
	"strings"

	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/shopspring/decimal"
)

// ResolveFactor returns the legacy multiplicative factor for a bidder: the media type specific
// one if configured, else the flat one, else 1. Bidder matching ignores case.
func ResolveFactor(mediaType string, factors *openrtb_ext.ExtRequestBidAdjustmentFactors, bidder string) decimal.Decimal {
	if factors == nil {
		return one
	}
	if factor, ok := MediaTypeFactor(factors, mediaType, bidder); ok {
		return factor
	}
	if factor, ok := factors.Factors[strings.ToLower(bidder)]; ok {
		return factor
	}
	return one
}

// MediaTypeFactor looks up mediatypes.<mediaType>.<bidder>. Refined video types fall back to
// the plain video entry.
func MediaTypeFactor(factors *openrtb_ext.ExtRequestBidAdjustmentFactors, mediaType string, bidder string) (decimal.Decimal, bool) {
	if factors == nil {
		return decimal.Decimal{}, false
	}
	bidder = strings.ToLower(bidder)
	if factor, ok := factors.MediaTypes[mediaType][bidder]; ok {
		return factor, true
	}
	if mediaType == openrtb_ext.AdjustmentMediaTypeVideoInstream || mediaType == openrtb_ext.AdjustmentMediaTypeVideoOutstream {
		factor, ok := factors.MediaTypes[openrtb_ext.AdjustmentMediaTypeVideo][bidder]
		return factor, ok
	}
	return decimal.Decimal{}, false
}

package exchange

import (
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/prebid/prebid-bidadjustments/config"
	"github.com/prebid/prebid-bidadjustments/currency"
	"github.com/prebid/prebid-bidadjustments/exchange/entities"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
)

// AuctionConversions returns the rates an auction prices with. Custom rates in
// ext.prebid.currency take priority over the server rates unless usepbsrates is false, in which
// case only the custom rates are used.
func AuctionConversions(req *openrtb2.BidRequest, rateConverter *currency.RateConverter) currency.Conversions {
	var requestRates *openrtb_ext.ExtRequestCurrency
	if reqExt, err := openrtb_ext.ParseExtRequest(req); err == nil {
		requestRates = reqExt.Prebid.CurrencyConversions
	}
	return currency.GetAuctionCurrencyRates(rateConverter, requestRates)
}

// AdjustAuction runs the whole pricing step of an auction once every bidder has answered: it
// builds the rule set from the request and account, then prices all participations with it.
// The returned errors are the debug warnings produced while building the rule set.
func (p *BidAdjustmentsProcessor) AdjustAuction(
	req *openrtb2.BidRequest,
	account config.Account,
	participations []entities.AuctionParticipation,
	rateConverter *currency.RateConverter,
) ([]entities.AuctionParticipation, []error) {
	adjustments, warnings := p.ResolveAdjustments(req, account)
	conversions := AuctionConversions(req, rateConverter)
	return p.AdjustAllParticipations(participations, req, adjustments, conversions), warnings
}

package floors

import (
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/prebid/prebid-bidadjustments/bidadjustment"
	"github.com/prebid/prebid-bidadjustments/config"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/shopspring/decimal"
)

// AdjustImpFloors rewrites imp.bidfloor and imp.bidfloorcur of a bidder's copy of the request,
// first through the legacy factors and then through the rule set. It does nothing when either
// the request or the account turned floor adjustment off. The request is modified in place, and
// only once every floor has been computed: on error it is left untouched.
func AdjustImpFloors(
	req *openrtb2.BidRequest,
	bidder string,
	adServerCurrency string,
	adjustments *bidadjustment.BidAdjustments,
	account config.Account,
	converter bidadjustment.CurrencyConverter,
) error {
	if req == nil || !account.PriceFloors.AdjustsForBidAdjustment() {
		return nil
	}

	reqExt, err := openrtb_ext.ParseExtRequest(req)
	if err != nil {
		return err
	}
	if !reqExt.Prebid.Floors.AdjustForBidAdjustment() {
		return nil
	}

	var rules bidadjustment.RuleSet
	if adjustments != nil {
		rules = adjustments.Rules
	}

	adjustedFloors := make([]bidadjustment.Price, len(req.Imp))
	for i := range req.Imp {
		imp := &req.Imp[i]
		if imp.BidFloor <= 0 {
			continue
		}

		floorCur := imp.BidFloorCur
		if floorCur == "" {
			floorCur = defaultFloorCurrency
		}
		mediaTypes := ImpMediaTypes(imp)

		amount := AdjustForFactors(decimal.NewFromFloat(imp.BidFloor), mediaTypes, bidder, reqExt.Prebid.BidAdjustmentFactors)
		adjusted, err := AdjustForBidAdjustments(bidadjustment.Price{Currency: floorCur, Amount: amount}, adServerCurrency, mediaTypes, bidder, rules, converter)
		if err != nil {
			return err
		}
		adjustedFloors[i] = adjusted
	}

	for i, adjusted := range adjustedFloors {
		if adjusted.Currency == "" {
			continue
		}
		req.Imp[i].BidFloor = adjusted.Amount.InexactFloat64()
		req.Imp[i].BidFloorCur = adjusted.Currency
	}
	return nil
}

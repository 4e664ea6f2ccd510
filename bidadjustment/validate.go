package bidadjustment

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/prebid/prebid-bidadjustments/errortypes"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/shopspring/decimal"
)

var (
	maxCPMValue        = decimal.NewFromInt(math.MaxInt32).Add(one)
	maxMultiplierValue = hundred
)

// Validate returns the first structural or rule violation found in the tree, visiting media
// types, bidders and deal ids in lexical order. Media types rules cannot be keyed by are skipped.
func Validate(bidAdjustments *openrtb_ext.ExtRequestPrebidBidAdjustments) error {
	if bidAdjustments == nil {
		return nil
	}

	for _, mediaType := range slices.Sorted(maps.Keys(bidAdjustments.MediaType)) {
		if !openrtb_ext.IsAdjustmentMediaType(mediaType) {
			continue
		}
		bidders := bidAdjustments.MediaType[mediaType]
		if len(bidders) == 0 {
			return &errortypes.BadInput{Message: fmt.Sprintf("no bidders found in %s", mediaType)}
		}
		for _, bidder := range slices.Sorted(maps.Keys(bidders)) {
			if err := validateDeals(mediaType, bidder, bidders[bidder]); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateDeals(mediaType, bidder string, deals openrtb_ext.AdjustmentsByDealID) error {
	if len(deals) == 0 {
		return &errortypes.BadInput{Message: fmt.Sprintf("no deals found in %s.%s", mediaType, bidder)}
	}
	for _, dealID := range slices.Sorted(maps.Keys(deals)) {
		rules := deals[dealID]
		if len(rules) == 0 {
			return &errortypes.BadInput{
				Message: fmt.Sprintf("no bid adjustment rules found in %s.%s.%s", mediaType, bidder, dealID),
			}
		}
		for _, rule := range rules {
			if !IsValidAdjustment(rule) {
				return &errortypes.BadInput{
					Message: fmt.Sprintf("the found rule %s in %s.%s.%s is invalid", describe(rule), mediaType, bidder, dealID),
				}
			}
		}
	}
	return nil
}

// IsValidAdjustment checks a single rule against the bounds of its type.
func IsValidAdjustment(rule openrtb_ext.Adjustment) bool {
	if !rule.Value.Valid || rule.Value.Decimal.IsNegative() {
		return false
	}
	switch rule.Type {
	case openrtb_ext.AdjustmentTypeCPM, openrtb_ext.AdjustmentTypeStatic:
		return rule.Currency != "" && rule.Value.Decimal.LessThan(maxCPMValue)
	case openrtb_ext.AdjustmentTypeMultiplier:
		return rule.Value.Decimal.LessThan(maxMultiplierValue)
	}
	return false
}

func describe(rule openrtb_ext.Adjustment) string {
	value := "null"
	if rule.Value.Valid {
		value = rule.Value.Decimal.String()
	}
	currency := rule.Currency
	if currency == "" {
		currency = "null"
	}
	return fmt.Sprintf("[adjtype=%s, value=%s, currency=%s]", rule.Type, value, currency)
}

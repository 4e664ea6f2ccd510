package floors

import (
	"fmt"

	"github.com/prebid/prebid-bidadjustments/bidadjustment"
	"github.com/prebid/prebid-bidadjustments/errortypes"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/shopspring/decimal"
)

// AdjustForBidAdjustments projects a floor backwards through the rules a bidder's bids would
// go through, so that a bid clearing the returned floor still clears the original floor after
// adjustment. Every candidate media type is tried and the lowest floor wins. Floors are
// resolved without a deal id.
func AdjustForBidAdjustments(
	floor bidadjustment.Price,
	adServerCurrency string,
	mediaTypes []string,
	bidder string,
	rules bidadjustment.RuleSet,
	converter bidadjustment.CurrencyConverter,
) (bidadjustment.Price, error) {
	if len(mediaTypes) == 0 || rules.IsEmpty() {
		return floor, nil
	}

	converted, err := converter.Convert(floor.Amount, floor.Currency, adServerCurrency)
	if err != nil {
		return floor, &errortypes.NoConversionRate{
			Message: fmt.Sprintf("Unable to convert floor currency %s to ad server currency %s: %v", floor.Currency, adServerCurrency, err),
		}
	}

	var lowest *decimal.Decimal
	for _, mediaType := range mediaTypes {
		adjusted, err := reverse(converted, adServerCurrency, bidadjustment.Resolve(rules, mediaType, bidder, "", ""), converter)
		if err != nil {
			return floor, err
		}
		if lowest == nil || adjusted.LessThan(*lowest) {
			lowest = &adjusted
		}
	}

	amount, err := converter.Convert(*lowest, adServerCurrency, floor.Currency)
	if err != nil {
		return floor, &errortypes.NoConversionRate{
			Message: fmt.Sprintf("Unable to convert ad server currency %s to floor currency %s: %v", adServerCurrency, floor.Currency, err),
		}
	}

	return bidadjustment.Price{
		Currency: floor.Currency,
		Amount:   amount.RoundBank(floorPrecision),
	}, nil
}

// reverse undoes rules last to first. A multiplier divides by its value, zero multipliers are
// skipped. Static rules and rules of unknown type have no inverse.
func reverse(amount decimal.Decimal, cur string, rules []openrtb_ext.Adjustment, converter bidadjustment.CurrencyConverter) (decimal.Decimal, error) {
	for i := len(rules) - 1; i >= 0; i-- {
		rule := rules[i]
		value := rule.Value.Decimal
		switch rule.Type {
		case openrtb_ext.AdjustmentTypeStatic:
			return decimal.Zero, &errortypes.FloorConfig{Message: "STATIC type can't be applied to a floor price"}
		case openrtb_ext.AdjustmentTypeMultiplier:
			if value.IsZero() {
				continue
			}
			amount = amount.Div(value)
		case openrtb_ext.AdjustmentTypeCPM:
			converted, err := converter.Convert(value, rule.Currency, cur)
			if err != nil {
				return decimal.Zero, &errortypes.NoConversionRate{
					Message: fmt.Sprintf("Unable to convert adjustment currency %s to %s: %v", rule.Currency, cur, err),
				}
			}
			amount = amount.Sub(converted)
		default:
			return decimal.Zero, &errortypes.FloorConfig{
				Message: fmt.Sprintf("%s type can't be applied to a floor price", rule.Type),
			}
		}
	}
	return amount, nil
}

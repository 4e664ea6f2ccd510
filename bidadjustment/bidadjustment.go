package bidadjustment

import (
	"fmt"

	"github.com/prebid/prebid-bidadjustments/errortypes"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/shopspring/decimal"
)

const (
	WildCard  = "*"
	Delimiter = "|"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Price is an amount in a currency. Adjustments never modify a Price in place.
type Price struct {
	Currency string
	Amount   decimal.Decimal
}

func (p Price) String() string {
	return p.Amount.String() + " " + p.Currency
}

// CurrencyConverter converts an amount between two currencies.
type CurrencyConverter interface {
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// Apply walks price through rules in order. CPM rules add their value converted into the running
// currency, static rules replace amount and currency and multiplier rules scale by
// (1 + value/100). A failed conversion or a rule of unknown type aborts the whole list.
func Apply(price Price, rules []openrtb_ext.Adjustment, converter CurrencyConverter) (Price, error) {
	for _, rule := range rules {
		value := rule.Value.Decimal
		switch rule.Type {
		case openrtb_ext.AdjustmentTypeMultiplier:
			price = Price{
				Currency: price.Currency,
				Amount:   price.Amount.Mul(one.Add(value.Div(hundred))),
			}
		case openrtb_ext.AdjustmentTypeCPM:
			converted, err := converter.Convert(value, rule.Currency, price.Currency)
			if err != nil {
				return Price{}, &errortypes.FailedToAdjustBid{
					Message: fmt.Sprintf("Unable to convert adjustment currency %s to %s: %v", rule.Currency, price.Currency, err),
				}
			}
			price = Price{
				Currency: price.Currency,
				Amount:   price.Amount.Add(converted),
			}
		case openrtb_ext.AdjustmentTypeStatic:
			price = Price{
				Currency: rule.Currency,
				Amount:   value,
			}
		default:
			return Price{}, &errortypes.FailedToAdjustBid{
				Message: fmt.Sprintf("Unable to apply bid adjustment rule %s", describe(rule)),
			}
		}
	}
	return price, nil
}

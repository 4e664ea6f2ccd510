package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Converter moves decimal amounts between currencies using a Conversions snapshot.
type Converter struct {
	conversions Conversions
}

// NewConverter returns a Converter over conversions. A nil Conversions only allows
// same-currency conversions.
func NewConverter(conversions Conversions) Converter {
	if conversions == nil {
		conversions = NewConstantRates()
	}
	return Converter{conversions: conversions}
}

// Convert returns amount expressed in the to currency. Same-currency conversions never
// consult the rates.
func (c Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if strings.EqualFold(from, to) {
		return amount, nil
	}
	rate, err := c.conversions.GetRate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(decimal.NewFromFloat(rate)), nil
}

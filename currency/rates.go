package currency

import (
	"errors"

	"golang.org/x/text/currency"
)

// Conversions allows to get a conversion rate between two currencies.
// if one of the currency string is not a currency or if there is not conversion between those
// currencies, then an err is returned and rate is 0.
type Conversions interface {
	GetRate(from string, to string) (float64, error)
	GetRates() *map[string]map[string]float64
}

// Rates holds data as represented on https://cdn.jsdelivr.net/gh/prebid/currency-file@1/latest.json
type Rates struct {
	Conversions map[string]map[string]float64 `json:"conversions"`
}

// NewRates creates a new Rates object holding currencies rates
func NewRates(conversions map[string]map[string]float64) *Rates {
	return &Rates{
		Conversions: conversions,
	}
}

// findIntermediateConversionRate crosses the two currencies through any base currency which
// quotes both of them.
func findIntermediateConversionRate(r *Rates, from, to currency.Unit) (float64, error) {
	for _, conversions := range r.Conversions {
		toRate, hasToRate := conversions[to.String()]
		fromRate, hasFromRate := conversions[from.String()]

		if hasToRate && hasFromRate && fromRate != 0 {
			return toRate / fromRate, nil
		}
	}

	return 0, ConversionNotFoundError{FromCur: from.String(), ToCur: to.String()}
}

// GetRate returns the conversion rate between two currencies or:
//   - An error if one of the currency strings is not a recognized ISO-4217 code
//   - A ConversionNotFoundError in case no direct, inverse or intermediate rate is known
func (r *Rates) GetRate(from, to string) (float64, error) {
	fromUnit, err := currency.ParseISO(from)
	if err != nil {
		return 0, err
	}
	toUnit, err := currency.ParseISO(to)
	if err != nil {
		return 0, err
	}
	if fromUnit.String() == toUnit.String() {
		return 1, nil
	}
	if r.Conversions == nil {
		return 0, errors.New("rates are nil")
	}
	if conversion, present := r.Conversions[fromUnit.String()][toUnit.String()]; present {
		return conversion, nil
	}
	if conversion, present := r.Conversions[toUnit.String()][fromUnit.String()]; present && conversion != 0 {
		return 1 / conversion, nil
	}
	return findIntermediateConversionRate(r, fromUnit, toUnit)
}

// GetRates returns current rates
func (r *Rates) GetRates() *map[string]map[string]float64 {
	return &r.Conversions
}

// ConstantRates doesn't do any currency conversions and accepts only conversions where
// both currencies (from and to) are the same.
type ConstantRates struct{}

// NewConstantRates creates a new ConstantRates object
func NewConstantRates() *ConstantRates {
	return &ConstantRates{}
}

// GetRate returns 1 if both currencies are the same, a ConversionNotFoundError otherwise.
func (r *ConstantRates) GetRate(from string, to string) (float64, error) {
	fromUnit, err := currency.ParseISO(from)
	if err != nil {
		return 0, err
	}
	toUnit, err := currency.ParseISO(to)
	if err != nil {
		return 0, err
	}

	if fromUnit.String() != toUnit.String() {
		return 0, ConversionNotFoundError{FromCur: fromUnit.String(), ToCur: toUnit.String()}
	}

	return 1, nil
}

func (r *ConstantRates) GetRates() *map[string]map[string]float64 {
	return nil
}

// AggregateConversions prefers the request-defined rates from request.ext.prebid.currency
// and falls back to the server rates when a pair is missing there.
type AggregateConversions struct {
	customRates, serverRates Conversions
}

// NewAggregateConversions expects both customRates and serverRates to not be nil
func NewAggregateConversions(customRates, serverRates Conversions) *AggregateConversions {
	return &AggregateConversions{
		customRates: customRates,
		serverRates: serverRates,
	}
}

func (re *AggregateConversions) GetRate(from string, to string) (float64, error) {
	rate, err := re.customRates.GetRate(from, to)
	if err == nil {
		return rate, nil
	}
	if _, isMissingRateErr := err.(ConversionNotFoundError); !isMissingRateErr {
		return 0, err
	}
	return re.serverRates.GetRate(from, to)
}

// GetRates is not implemented for AggregateConversions.
func (re *AggregateConversions) GetRates() *map[string]map[string]float64 {
	return nil
}

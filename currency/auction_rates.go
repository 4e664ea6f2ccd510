package currency

import (
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
)

// GetAuctionCurrencyRates picks the Conversions one auction converts with: the server rates,
// the request rates or both with the request rates taking priority.
func GetAuctionCurrencyRates(currencyConverter *RateConverter, requestRates *openrtb_ext.ExtRequestCurrency) Conversions {
	if currencyConverter == nil && requestRates == nil {
		return nil
	}

	if requestRates == nil {
		return currencyConverter.Rates()
	}

	if currencyConverter == nil {
		return NewRates(requestRates.ConversionRates)
	}

	// usepbsrates is only false when explicitly set so
	usePbsRates := requestRates.UsePBSRates == nil || *requestRates.UsePBSRates

	if !usePbsRates {
		return NewRates(requestRates.ConversionRates)
	}

	if len(requestRates.ConversionRates) == 0 {
		return currencyConverter.Rates()
	}

	return NewAggregateConversions(NewRates(requestRates.ConversionRates), currencyConverter.Rates())
}

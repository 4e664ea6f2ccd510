package openrtb_ext

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/shopspring/decimal"
)

// ExtRequest defines the contract for bidrequest.ext
type ExtRequest struct {
	Prebid ExtRequestPrebid `json:"prebid"`
}

// ExtRequestPrebid defines the parts of bidrequest.ext.prebid this module reads.
type ExtRequestPrebid struct {
	BidAdjustmentFactors *ExtRequestBidAdjustmentFactors `json:"bidadjustmentfactors,omitempty"`
	BidAdjustments       json.RawMessage                 `json:"bidadjustments,omitempty"`
	CurrencyConversions  *ExtRequestCurrency             `json:"currency,omitempty"`
	Floors               *PriceFloorRules                `json:"floors,omitempty"`
	Debug                bool                            `json:"debug,omitempty"`
}

// ExtRequestCurrency defines the contract for bidrequest.ext.prebid.currency
type ExtRequestCurrency struct {
	ConversionRates map[string]map[string]float64 `json:"rates"`
	UsePBSRates     *bool                         `json:"usepbsrates"`
}

// ParseExtRequest decodes bidrequest.ext. A request without ext yields an empty ExtRequest.
func ParseExtRequest(req *openrtb2.BidRequest) (*ExtRequest, error) {
	ext := &ExtRequest{}
	if req == nil || len(req.Ext) == 0 {
		return ext, nil
	}
	if err := json.Unmarshal(req.Ext, ext); err != nil {
		return nil, fmt.Errorf("failed to parse request.ext: %v", err)
	}
	return ext, nil
}

// IsDebug reports whether diagnostics should be collected for the request.
func (ext *ExtRequest) IsDebug(req *openrtb2.BidRequest) bool {
	return (req != nil && req.Test == 1) || ext.Prebid.Debug
}

// ExtRequestBidAdjustmentFactors holds the legacy multiplicative factors found in
// ext.prebid.bidadjustmentfactors:
//
//	{"bidderA": 0.9, "mediatypes": {"banner": {"bidderA": 0.8}}}
//
// Bidder names are lower-cased on decode so lookups are case-insensitive.
type ExtRequestBidAdjustmentFactors struct {
	Factors    map[string]decimal.Decimal
	MediaTypes map[string]map[string]decimal.Decimal
}

const mediaTypesFactorKey = "mediatypes"

func (f *ExtRequestBidAdjustmentFactors) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	f.Factors = make(map[string]decimal.Decimal, len(raw))
	f.MediaTypes = nil
	for key, value := range raw {
		if key == mediaTypesFactorKey {
			var byMediaType map[string]map[string]decimal.Decimal
			if err := json.Unmarshal(value, &byMediaType); err != nil {
				return fmt.Errorf("invalid bidadjustmentfactors.mediatypes: %v", err)
			}
			f.MediaTypes = make(map[string]map[string]decimal.Decimal, len(byMediaType))
			for mediaType, factors := range byMediaType {
				f.MediaTypes[mediaType] = lowerKeys(factors)
			}
			continue
		}
		var factor decimal.Decimal
		if err := json.Unmarshal(value, &factor); err != nil {
			return fmt.Errorf("invalid bidadjustmentfactors.%s: %v", key, err)
		}
		f.Factors[strings.ToLower(key)] = factor
	}
	return nil
}

func (f ExtRequestBidAdjustmentFactors) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(f.Factors)+1)
	for bidder, factor := range f.Factors {
		out[bidder] = factor
	}
	if len(f.MediaTypes) > 0 {
		out[mediaTypesFactorKey] = f.MediaTypes
	}
	return json.Marshal(out)
}

func lowerKeys(factors map[string]decimal.Decimal) map[string]decimal.Decimal {
	lowered := make(map[string]decimal.Decimal, len(factors))
	for bidder, factor := range factors {
		lowered[strings.ToLower(bidder)] = factor
	}
	return lowered
}

package openrtb_ext

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// AdjustmentType is the kind of price transformation a rule performs.
type AdjustmentType string

const (
	AdjustmentTypeCPM        AdjustmentType = "cpm"
	AdjustmentTypeStatic     AdjustmentType = "static"
	AdjustmentTypeMultiplier AdjustmentType = "multiplier"
	// AdjustmentTypeUnknown is what any unrecognized adjtype parses to. It is never valid.
	AdjustmentTypeUnknown AdjustmentType = "unknown"
)

// ParseAdjustmentType maps a tag onto a known AdjustmentType, ignoring case.
func ParseAdjustmentType(tag string) AdjustmentType {
	switch t := AdjustmentType(strings.ToLower(tag)); t {
	case AdjustmentTypeCPM, AdjustmentTypeStatic, AdjustmentTypeMultiplier:
		return t
	}
	return AdjustmentTypeUnknown
}

func (t *AdjustmentType) UnmarshalJSON(b []byte) error {
	var tag string
	if err := json.Unmarshal(b, &tag); err != nil {
		*t = AdjustmentTypeUnknown
		return nil
	}
	*t = ParseAdjustmentType(tag)
	return nil
}

// String renders the type the way diagnostics show it, e.g. CPM.
func (t AdjustmentType) String() string {
	if t == "" {
		return strings.ToUpper(string(AdjustmentTypeUnknown))
	}
	return strings.ToUpper(string(t))
}

// Media types a rule can be scoped to. Video can be refined into in-stream and out-stream.
const (
	AdjustmentMediaTypeBanner         = "banner"
	AdjustmentMediaTypeVideo          = "video"
	AdjustmentMediaTypeVideoInstream  = "video_instream"
	AdjustmentMediaTypeVideoOutstream = "video_outstream"
	AdjustmentMediaTypeAudio          = "audio"
	AdjustmentMediaTypeNative         = "native"
	AdjustmentMediaTypeWildcard       = "*"
)

var adjustmentMediaTypes = map[string]struct{}{
	AdjustmentMediaTypeBanner:         {},
	AdjustmentMediaTypeVideo:          {},
	AdjustmentMediaTypeVideoInstream:  {},
	AdjustmentMediaTypeVideoOutstream: {},
	AdjustmentMediaTypeAudio:          {},
	AdjustmentMediaTypeNative:         {},
	AdjustmentMediaTypeWildcard:       {},
}

// IsAdjustmentMediaType reports whether mediaType is one rules may be keyed by.
func IsAdjustmentMediaType(mediaType string) bool {
	_, ok := adjustmentMediaTypes[mediaType]
	return ok
}

// Adjustment is a single pricing rule. A missing value is kept distinguishable from zero.
type Adjustment struct {
	Type     AdjustmentType      `json:"adjtype"`
	Value    decimal.NullDecimal `json:"value"`
	Currency string              `json:"currency,omitempty"`
}

// AdjustmentsByDealID maps a deal id, or "*", to the rules applied in order.
type AdjustmentsByDealID map[string][]Adjustment

// ExtRequestPrebidBidAdjustments is the rule tree found in ext.prebid.bidadjustments and in
// account configuration: mediatype -> bidder or seat -> deal id -> rules.
type ExtRequestPrebidBidAdjustments struct {
	MediaType map[string]map[string]AdjustmentsByDealID `json:"mediatype,omitempty"`
}

package openrtb_ext

// PriceFloorEnforcement defines the contract for bidrequest.ext.prebid.floors.enforcement
type PriceFloorEnforcement struct {
	EnforcePBS *bool `json:"enforcepbs,omitempty"`
	FloorDeals *bool `json:"floordeals,omitempty"`
	// BidAdjustment turns off projecting floors through bid adjustments when explicitly false.
	BidAdjustment *bool `json:"bidadjustment,omitempty"`
}

// PriceFloorRules defines the contract for bidrequest.ext.prebid.floors
type PriceFloorRules struct {
	FloorMin    float64                `json:"floormin,omitempty"`
	FloorMinCur string                 `json:"floormincur,omitempty"`
	Enforcement *PriceFloorEnforcement `json:"enforcement,omitempty"`
	Enabled     *bool                  `json:"enabled,omitempty"`
}

// AdjustForBidAdjustment reports whether floors should be moved by bid adjustments. It
// defaults to true.
func (rules *PriceFloorRules) AdjustForBidAdjustment() bool {
	if rules == nil || rules.Enforcement == nil || rules.Enforcement.BidAdjustment == nil {
		return true
	}
	return *rules.Enforcement.BidAdjustment
}

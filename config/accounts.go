package config

import "encoding/json"

// Account represents a publisher account configuration
type Account struct {
	ID          string             `mapstructure:"id" json:"id"`
	PriceFloors AccountPriceFloors `mapstructure:"price_floors" json:"price_floors"`
	// BidAdjustments is the raw account level rule tree. It is validated when an auction
	// builds its rule set, so a broken account never fails account loading.
	BidAdjustments json.RawMessage `mapstructure:"-" json:"bidadjustments,omitempty"`
}

type AccountPriceFloors struct {
	// AdjustForBidAdjustment is nil when neither the host defaults nor the account set it.
	AdjustForBidAdjustment *bool `mapstructure:"adjust_for_bid_adjustment" json:"adjust_for_bid_adjustment,omitempty"`
}

// AdjustsForBidAdjustment reports whether floors follow bid adjustments. Unset means yes.
func (pf AccountPriceFloors) AdjustsForBidAdjustment() bool {
	return pf.AdjustForBidAdjustment == nil || *pf.AdjustForBidAdjustment
}

// UnmarshalAccount decodes an account document on top of the host defaults. The defaults are
// never modified.
func UnmarshalAccount(data []byte, defaults Account) (*Account, error) {
	account := defaults
	account.BidAdjustments = nil
	if adjust := defaults.PriceFloors.AdjustForBidAdjustment; adjust != nil {
		copied := *adjust
		account.PriceFloors.AdjustForBidAdjustment = &copied
	}
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

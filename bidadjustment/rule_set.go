package bidadjustment

import (
	"maps"
	"slices"
	"strings"

	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
)

// RuleKey addresses one bucket of rules. The identity is a bidder or seat name, lower-cased, or
// the wildcard.
type RuleKey struct {
	MediaType string
	Bidder    string
	DealID    string
}

// NewRuleKey builds a RuleKey, folding the identity to lower case.
func NewRuleKey(mediaType, bidder, dealID string) RuleKey {
	return RuleKey{
		MediaType: mediaType,
		Bidder:    strings.ToLower(bidder),
		DealID:    dealID,
	}
}

func (k RuleKey) String() string {
	return k.MediaType + Delimiter + k.Bidder + Delimiter + k.DealID
}

// RuleSet is the flattened, read-only view of a validated rule tree. The zero value is an empty
// set and applies nothing.
type RuleSet struct {
	rules map[RuleKey][]openrtb_ext.Adjustment
}

// NewRuleSet flattens a validated tree. Rule order within each bucket is kept.
func NewRuleSet(tree *openrtb_ext.ExtRequestPrebidBidAdjustments) RuleSet {
	if tree == nil {
		return RuleSet{}
	}
	rules := make(map[RuleKey][]openrtb_ext.Adjustment)
	for mediaType, bidders := range tree.MediaType {
		for _, bidder := range identityOrder(bidders) {
			for dealID, adjustments := range bidders[bidder] {
				key := NewRuleKey(mediaType, bidder, dealID)
				if _, taken := rules[key]; taken || len(adjustments) == 0 {
					continue
				}
				rules[key] = slices.Clone(adjustments)
			}
		}
	}
	return RuleSet{rules: rules}
}

// FoldIdentities lower-cases the bidder and seat keys of tree in place. Keys that fold onto the
// same identity are combined; on a shared deal id the already lower-case key wins, then the
// key that sorts first.
func FoldIdentities(tree *openrtb_ext.ExtRequestPrebidBidAdjustments) {
	if tree == nil {
		return
	}
	for mediaType, bidders := range tree.MediaType {
		folded := make(map[string]openrtb_ext.AdjustmentsByDealID, len(bidders))
		for _, bidder := range identityOrder(bidders) {
			identity := strings.ToLower(bidder)
			deals, ok := folded[identity]
			if !ok {
				deals = make(openrtb_ext.AdjustmentsByDealID, len(bidders[bidder]))
				folded[identity] = deals
			}
			for dealID, adjustments := range bidders[bidder] {
				if _, taken := deals[dealID]; !taken {
					deals[dealID] = adjustments
				}
			}
		}
		tree.MediaType[mediaType] = folded
	}
}

// identityOrder lists lower-case keys first, then the rest, each group sorted.
func identityOrder(bidders map[string]openrtb_ext.AdjustmentsByDealID) []string {
	keys := slices.Collect(maps.Keys(bidders))
	slices.SortFunc(keys, func(a, b string) int {
		aLower, bLower := a == strings.ToLower(a), b == strings.ToLower(b)
		if aLower != bLower {
			if aLower {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}

// Get returns a copy of the rules stored under key.
func (rs RuleSet) Get(key RuleKey) ([]openrtb_ext.Adjustment, bool) {
	rules, ok := rs.rules[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(rules), true
}

func (rs RuleSet) Len() int {
	return len(rs.rules)
}

func (rs RuleSet) IsEmpty() bool {
	return len(rs.rules) == 0
}

// Keys returns every key, ordered by its rendered form.
func (rs RuleSet) Keys() []RuleKey {
	keys := make([]RuleKey, 0, len(rs.rules))
	for key := range rs.rules {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b RuleKey) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}

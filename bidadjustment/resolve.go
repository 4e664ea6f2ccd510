package bidadjustment

import (
	"strings"

	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
)

// Resolve picks the single most specific bucket for a bid. Media type is matched first (exact,
// then wildcard). Inside a media type the identity is tried as seat, bidder, then wildcard, and
// for each identity the deal id before the wildcard deal. The first bucket found wins; no match
// returns nil.
func Resolve(rules RuleSet, mediaType, bidder, seat, dealID string) []openrtb_ext.Adjustment {
	if rules.IsEmpty() {
		return nil
	}

	for _, mt := range candidates(mediaType) {
		for _, identity := range candidates(seat, bidder) {
			for _, deal := range candidates(dealID) {
				if found, ok := rules.Get(NewRuleKey(mt, identity, deal)); ok {
					return found
				}
			}
		}
	}
	return nil
}

// candidates lists the non-empty values in order, followed by the wildcard, without repeats.
func candidates(values ...string) []string {
	out := make([]string, 0, len(values)+1)
	for _, v := range append(values, WildCard) {
		if v == "" || containsFold(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func containsFold(values []string, v string) bool {
	for _, existing := range values {
		if strings.EqualFold(existing, v) {
			return true
		}
	}
	return false
}

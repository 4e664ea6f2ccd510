package floors

import (
	"encoding/json"
	"testing"

	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factorsFromJSON(t *testing.T, data string) *openrtb_ext.ExtRequestBidAdjustmentFactors {
	factors := &openrtb_ext.ExtRequestBidAdjustmentFactors{}
	require.NoError(t, json.Unmarshal([]byte(data), factors))
	return factors
}

func TestAdjustForFactors(t *testing.T) {
	testCases := []struct {
		description string
		factors     string
		mediaTypes  []string
		bidder      string
		expected    string
	}{
		{
			description: "media-type-factor",
			factors:     `{"mediatypes":{"video":{"rubicon":0.85}}}`,
			mediaTypes:  []string{"video_instream"},
			bidder:      "rubicon",
			expected:    "11.7647",
		},
		{
			description: "flat-factor-lower-than-media-type",
			factors:     `{"rubicon":0.6,"mediatypes":{"video":{"rubicon":0.7}}}`,
			mediaTypes:  []string{"video_instream"},
			bidder:      "rubicon",
			expected:    "16.6667",
		},
		{
			description: "factor-above-one-lowers-floor",
			factors:     `{"rubicon":2,"mediatypes":{"video":{"rubicon":3}}}`,
			mediaTypes:  []string{"video_instream"},
			bidder:      "rubicon",
			expected:    "5.0000",
		},
		{
			description: "minimal-factor-across-media-types",
			factors:     `{"mediatypes":{"video_outstream":{"rubicon":0.8},"audio":{"rubicon":0.75},"native":{"rubicon":0.6}}}`,
			mediaTypes:  []string{"banner", "video_outstream", "audio", "native"},
			bidder:      "rubicon",
			expected:    "16.6667",
		},
		{
			description: "other-bidder",
			factors:     `{"appnexus":0.5}`,
			mediaTypes:  []string{"banner"},
			bidder:      "rubicon",
			expected:    "10.0000",
		},
		{
			description: "media-type-not-on-imp",
			factors:     `{"mediatypes":{"video_outstream":{"rubicon":0.5}}}`,
			mediaTypes:  []string{"video_instream"},
			bidder:      "rubicon",
			expected:    "10.0000",
		},
		{
			description: "bidder-case-ignored",
			factors:     `{"Rubicon":0.5}`,
			mediaTypes:  []string{"banner"},
			bidder:      "RUBICON",
			expected:    "20.0000",
		},
		{
			description: "zero-factor-ignored",
			factors:     `{"rubicon":0}`,
			mediaTypes:  []string{"banner"},
			bidder:      "rubicon",
			expected:    "10.0000",
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			adjusted := AdjustForFactors(decimal.NewFromInt(10), test.mediaTypes, test.bidder, factorsFromJSON(t, test.factors))
			assert.Equal(t, test.expected, adjusted.StringFixed(4))
		})
	}
}

func TestAdjustForFactorsWithoutFactors(t *testing.T) {
	floor := decimal.RequireFromString("1.23456")
	assert.True(t, floor.Equal(AdjustForFactors(floor, []string{"banner"}, "bidder", nil)))
}

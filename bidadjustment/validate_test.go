package bidadjustment

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		description string
		tree        string
		expectedErr string
	}{
		{
			description: "empty-tree",
			tree:        `{}`,
		},
		{
			description: "valid-rules",
			tree: `{"mediatype":{"banner":{"bidderA":{"*":[
				{"adjtype":"cpm","value":0.1,"currency":"USD"},
				{"adjtype":"multiplier","value":99.99},
				{"adjtype":"static","value":2147483647,"currency":"EUR"}
			]}}}}`,
		},
		{
			description: "unknown-media-type-is-not-examined",
			tree:        `{"mediatype":{"dooh":{}}}`,
		},
		{
			description: "no-bidders",
			tree:        `{"mediatype":{"banner":{}}}`,
			expectedErr: "no bidders found in banner",
		},
		{
			description: "no-deals",
			tree:        `{"mediatype":{"video_instream":{"bidderA":{}}}}`,
			expectedErr: "no deals found in video_instream.bidderA",
		},
		{
			description: "no-rules",
			tree:        `{"mediatype":{"*":{"*":{"dealId":[]}}}}`,
			expectedErr: "no bid adjustment rules found in *.*.dealId",
		},
		{
			description: "null-rules",
			tree:        `{"mediatype":{"native":{"bidderA":{"*":null}}}}`,
			expectedErr: "no bid adjustment rules found in native.bidderA.*",
		},
		{
			description: "unknown-adjustment-type",
			tree:        `{"mediatype":{"banner":{"*":{"*":[{"adjtype":"unknown","value":0.1,"currency":"USD"}]}}}}`,
			expectedErr: "the found rule [adjtype=UNKNOWN, value=0.1, currency=USD] in banner.*.* is invalid",
		},
		{
			description: "cpm-without-currency",
			tree:        `{"mediatype":{"banner":{"*":{"*":[{"adjtype":"cpm","value":0.1}]}}}}`,
			expectedErr: "the found rule [adjtype=CPM, value=0.1, currency=null] in banner.*.* is invalid",
		},
		{
			description: "cpm-negative",
			tree:        `{"mediatype":{"banner":{"*":{"*":[{"adjtype":"cpm","value":-1,"currency":"USD"}]}}}}`,
			expectedErr: "the found rule [adjtype=CPM, value=-1, currency=USD] in banner.*.* is invalid",
		},
		{
			description: "static-too-large",
			tree:        `{"mediatype":{"audio":{"*":{"*":[{"adjtype":"static","value":2147483648,"currency":"USD"}]}}}}`,
			expectedErr: "the found rule [adjtype=STATIC, value=2147483648, currency=USD] in audio.*.* is invalid",
		},
		{
			description: "static-without-value",
			tree:        `{"mediatype":{"audio":{"*":{"*":[{"adjtype":"static","currency":"USD"}]}}}}`,
			expectedErr: "the found rule [adjtype=STATIC, value=null, currency=USD] in audio.*.* is invalid",
		},
		{
			description: "multiplier-too-large",
			tree:        `{"mediatype":{"banner":{"bidderA":{"*":[{"adjtype":"multiplier","value":100}]}}}}`,
			expectedErr: "the found rule [adjtype=MULTIPLIER, value=100, currency=null] in banner.bidderA.* is invalid",
		},
		{
			description: "first-violation-in-key-order",
			tree: `{"mediatype":{
				"video":{"bidderA":{}},
				"banner":{"bidderB":{"*":[]},"bidderA":{}}
			}}`,
			expectedErr: "no deals found in banner.bidderA",
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			tree := &openrtb_ext.ExtRequestPrebidBidAdjustments{}
			require.NoError(t, json.Unmarshal([]byte(test.tree), tree))

			err := Validate(tree)
			if test.expectedErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, test.expectedErr)
			}
			assert.Equal(t, err, Validate(tree), "validation is repeatable")
		})
	}
}

func TestValidateNil(t *testing.T) {
	assert.NoError(t, Validate(nil))
}

func TestSingleRuleValidityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("a one rule tree is valid exactly when its rule is within bounds", prop.ForAll(
		func(adjType openrtb_ext.AdjustmentType, value float64, currency string) bool {
			amount := decimal.NewFromFloat(value)
			rule := openrtb_ext.Adjustment{
				Type:     adjType,
				Value:    decimal.NewNullDecimal(amount),
				Currency: currency,
			}

			var expected bool
			switch adjType {
			case openrtb_ext.AdjustmentTypeCPM, openrtb_ext.AdjustmentTypeStatic:
				expected = currency != "" && !amount.IsNegative() && amount.LessThan(decimal.NewFromInt(1<<31))
			case openrtb_ext.AdjustmentTypeMultiplier:
				expected = !amount.IsNegative() && amount.LessThan(decimal.NewFromInt(100))
			}

			tree := &openrtb_ext.ExtRequestPrebidBidAdjustments{
				MediaType: map[string]map[string]openrtb_ext.AdjustmentsByDealID{
					"banner": {"bidder": {"*": {rule}}},
				},
			}
			return IsValidAdjustment(rule) == expected && (Validate(tree) == nil) == expected
		},
		gen.OneConstOf(
			openrtb_ext.AdjustmentTypeCPM,
			openrtb_ext.AdjustmentTypeStatic,
			openrtb_ext.AdjustmentTypeMultiplier,
			openrtb_ext.AdjustmentTypeUnknown,
		),
		gen.OneGenOf(
			gen.Float64Range(-10, 200),
			gen.Float64Range(1<<31-100, 1<<31+100),
			gen.OneConstOf(float64(1<<31-1), float64(1<<31), float64(1<<31)+0.5),
		),
		gen.OneConstOf("", "USD", "EUR"),
	))

	properties.TestingRun(t)
}

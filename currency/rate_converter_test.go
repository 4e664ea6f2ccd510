package currency

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prebid/prebid-bidadjustments/config"
	"github.com/prebid/prebid-bidadjustments/openrtb_ext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratesJSON = `{"dataAsOf":"2024-01-02","conversions":{"USD":{"EUR":0.9,"GBP":0.8}}}`

func TestRateConverterUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ratesJSON))
	}))
	defer server.Close()

	rc := NewRateConverter(server.Client(), config.CurrencyConverter{FetchURL: server.URL})

	_, isConstant := rc.Rates().(*ConstantRates)
	assert.True(t, isConstant, "constant rates are used until the first fetch")
	assert.True(t, rc.LastUpdated().IsZero())

	require.NoError(t, rc.Update())

	rate, err := rc.Rates().GetRate("USD", "EUR")
	assert.NoError(t, err)
	assert.Equal(t, 0.9, rate)
	assert.False(t, rc.LastUpdated().IsZero())
}

func TestRateConverterFailedUpdateKeepsFreshRates(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(ratesJSON))
	}))
	defer server.Close()

	rc := NewRateConverter(server.Client(), config.CurrencyConverter{FetchURL: server.URL, StaleRatesSeconds: 3600})
	require.NoError(t, rc.Update())

	fail.Store(true)
	assert.Error(t, rc.Update())

	_, isRates := rc.Rates().(*Rates)
	assert.True(t, isRates, "rates younger than the stale threshold survive a failed refresh")
}

func TestRateConverterStaleRatesFallBack(t *testing.T) {
	rc := NewRateConverter(http.DefaultClient, config.CurrencyConverter{FetchURL: "http://127.0.0.1:0", StaleRatesSeconds: 1})

	past := time.Now().Add(-time.Hour)
	rc.rates.Store(NewRates(map[string]map[string]float64{"USD": {"EUR": 0.9}}))
	rc.lastUpdated.Store(&past)

	assert.True(t, rc.CheckStaleRates())
	assert.Error(t, rc.Update())

	_, isConstant := rc.Rates().(*ConstantRates)
	assert.True(t, isConstant)
}

func TestRateConverterPeriodicFetching(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(ratesJSON))
	}))
	defer server.Close()

	ticks := make(chan int)
	rc := NewRateConverter(server.Client(), config.CurrencyConverter{FetchURL: server.URL}).WithNotifier(ticks)
	rc.fetchingInterval = 10 * time.Millisecond

	rc.Start()
	assert.Equal(t, 1, <-ticks)
	assert.Equal(t, 2, <-ticks)
	rc.StopPeriodicFetching()

	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestGetAuctionCurrencyRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ratesJSON))
	}))
	defer server.Close()

	rc := NewRateConverter(server.Client(), config.CurrencyConverter{FetchURL: server.URL})
	require.NoError(t, rc.Update())

	usePBSRates := false
	requestRates := map[string]map[string]float64{"USD": {"EUR": 0.5}}

	testCases := []struct {
		description  string
		converter    *RateConverter
		requestRates *openrtb_ext.ExtRequestCurrency
		expectedRate float64
		expectNil    bool
	}{
		{
			description: "nothing-configured",
			expectNil:   true,
		},
		{
			description:  "server-rates",
			converter:    rc,
			expectedRate: 0.9,
		},
		{
			description:  "request-rates-only",
			requestRates: &openrtb_ext.ExtRequestCurrency{ConversionRates: requestRates},
			expectedRate: 0.5,
		},
		{
			description:  "request-rates-override-server",
			converter:    rc,
			requestRates: &openrtb_ext.ExtRequestCurrency{ConversionRates: requestRates},
			expectedRate: 0.5,
		},
		{
			description:  "server-rates-disabled",
			converter:    rc,
			requestRates: &openrtb_ext.ExtRequestCurrency{ConversionRates: requestRates, UsePBSRates: &usePBSRates},
			expectedRate: 0.5,
		},
		{
			description:  "empty-request-rates",
			converter:    rc,
			requestRates: &openrtb_ext.ExtRequestCurrency{},
			expectedRate: 0.9,
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			conversions := GetAuctionCurrencyRates(test.converter, test.requestRates)
			if test.expectNil {
				assert.Nil(t, conversions)
				return
			}
			rate, err := conversions.GetRate("USD", "EUR")
			assert.NoError(t, err)
			assert.Equal(t, test.expectedRate, rate)
		})
	}
}

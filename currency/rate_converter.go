package currency

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prebid/prebid-bidadjustments/config"
	"github.com/prebid/prebid-bidadjustments/logger"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RateConverter holds the server side conversion rates and refreshes them periodically.
type RateConverter struct {
	httpClient          httpClient
	done                chan struct{}
	updateNotifier      chan<- int
	fetchingInterval    time.Duration
	staleRatesThreshold time.Duration
	syncSourceURL       string
	rates               atomic.Pointer[Rates]
	lastUpdated         atomic.Pointer[time.Time]
	constantRates       Conversions
}

// NewRateConverter returns a RateConverter configured from cfg. Nothing is fetched until Start.
func NewRateConverter(client httpClient, cfg config.CurrencyConverter) *RateConverter {
	return &RateConverter{
		httpClient:          client,
		done:                make(chan struct{}),
		fetchingInterval:    time.Duration(cfg.FetchIntervalSeconds) * time.Second,
		staleRatesThreshold: time.Duration(cfg.StaleRatesSeconds) * time.Second,
		syncSourceURL:       cfg.FetchURL,
		constantRates:       NewConstantRates(),
	}
}

// WithNotifier registers a channel receiving the tick count after each periodic update.
func (rc *RateConverter) WithNotifier(updateNotifier chan<- int) *RateConverter {
	rc.updateNotifier = updateNotifier
	return rc
}

// Start fetches the rates once and then keeps refreshing them. A zero interval disables
// fetching and leaves the converter on constant rates.
func (rc *RateConverter) Start() {
	if rc.fetchingInterval <= 0 {
		return
	}
	rc.Update()
	go rc.startPeriodicFetching()
}

func (rc *RateConverter) fetch() (*Rates, error) {
	request, err := http.NewRequest(http.MethodGet, rc.syncSourceURL, nil)
	if err != nil {
		return nil, err
	}

	response, err := rc.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint responded with status %d", response.StatusCode)
	}

	bytesJSON, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	updatedRates := &Rates{}
	if err := json.Unmarshal(bytesJSON, updatedRates); err != nil {
		return nil, err
	}

	return updatedRates, nil
}

// Update refreshes the rates from the remote source. Stale rates are dropped in favour of
// constant rates when the refresh fails.
func (rc *RateConverter) Update() error {
	rates, err := rc.fetch()
	if err == nil {
		now := time.Now()
		rc.rates.Store(rates)
		rc.lastUpdated.Store(&now)
		return nil
	}

	if rc.CheckStaleRates() {
		rc.ClearRates()
		logger.Errorf("Error updating conversion rates, falling back to constant rates: %v", err)
	} else {
		logger.Errorf("Error updating conversion rates: %v", err)
	}
	return err
}

func (rc *RateConverter) startPeriodicFetching() {
	ticker := time.NewTicker(rc.fetchingInterval)
	defer ticker.Stop()
	updatesTicksCount := 0

	for {
		select {
		case <-ticker.C:
			rc.Update()
			updatesTicksCount++
			if rc.updateNotifier != nil {
				rc.updateNotifier <- updatesTicksCount
			}
		case <-rc.done:
			return
		}
	}
}

// StopPeriodicFetching stops the periodic fetching while keeping the latest rates
func (rc *RateConverter) StopPeriodicFetching() {
	close(rc.done)
}

// LastUpdated returns time when currencies rates were updated
func (rc *RateConverter) LastUpdated() time.Time {
	if lastUpdated := rc.lastUpdated.Load(); lastUpdated != nil {
		return *lastUpdated
	}
	return time.Time{}
}

// Rates returns current conversions rates
func (rc *RateConverter) Rates() Conversions {
	if rates := rc.rates.Load(); rates != nil {
		return rates
	}
	return rc.constantRates
}

// ClearRates drops the fetched rates
func (rc *RateConverter) ClearRates() {
	rc.rates.Store(nil)
}

// CheckStaleRates checks if loaded third party conversion rates are stale
func (rc *RateConverter) CheckStaleRates() bool {
	if rc.staleRatesThreshold <= 0 {
		return false
	}
	lastUpdated := rc.lastUpdated.Load()
	if lastUpdated == nil {
		return false
	}
	return time.Since(*lastUpdated) > rc.staleRatesThreshold
}

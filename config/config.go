package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

// Configuration
type Configuration struct {
	AdServerCurrency  string            `mapstructure:"ad_server_currency"`
	CurrencyConverter CurrencyConverter `mapstructure:"currency_converter"`
	BidAdjustments    BidAdjustments    `mapstructure:"bid_adjustments"`
	Metrics           Metrics           `mapstructure:"metrics"`
	AccountDefaults   Account           `mapstructure:"account_defaults"`
}

type CurrencyConverter struct {
	FetchURL             string `mapstructure:"fetch_url"`
	FetchIntervalSeconds int    `mapstructure:"fetch_interval_seconds"`
	StaleRatesSeconds    int    `mapstructure:"stale_rates_seconds"`
}

// BidAdjustments holds host-level settings for rule based bid adjustments.
type BidAdjustments struct {
	// LogSamplingRate is the fraction of invalid account configurations written to the app log.
	LogSamplingRate float32 `mapstructure:"log_sampling_rate"`
	// MaxConcurrentBidders bounds the per-bidder fan-out. Zero means one goroutine per bidder.
	MaxConcurrentBidders int `mapstructure:"max_concurrent_bidders"`
}

type Metrics struct {
	Prometheus PrometheusMetrics `mapstructure:"prometheus"`
}

type PrometheusMetrics struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

func (cfg *CurrencyConverter) validate(errs []error) []error {
	if cfg.FetchIntervalSeconds < 0 {
		errs = append(errs, fmt.Errorf("currency_converter.fetch_interval_seconds must be >= 0. Got %d", cfg.FetchIntervalSeconds))
	}
	if cfg.StaleRatesSeconds < 0 {
		errs = append(errs, fmt.Errorf("currency_converter.stale_rates_seconds must be >= 0. Got %d", cfg.StaleRatesSeconds))
	}
	return errs
}

func (cfg *BidAdjustments) validate(errs []error) []error {
	if cfg.LogSamplingRate < 0 || cfg.LogSamplingRate > 1 {
		errs = append(errs, fmt.Errorf("bid_adjustments.log_sampling_rate must be between 0 and 1. Got %f", cfg.LogSamplingRate))
	}
	if cfg.MaxConcurrentBidders < 0 {
		errs = append(errs, fmt.Errorf("bid_adjustments.max_concurrent_bidders must be >= 0. Got %d", cfg.MaxConcurrentBidders))
	}
	return errs
}

func (cfg *Configuration) validate() []error {
	var errs []error
	if _, err := currency.ParseISO(cfg.AdServerCurrency); err != nil {
		errs = append(errs, fmt.Errorf("ad_server_currency %q is not a valid ISO-4217 code", cfg.AdServerCurrency))
	}
	errs = cfg.CurrencyConverter.validate(errs)
	errs = cfg.BidAdjustments.validate(errs)
	return errs
}

// New uses viper to get our configuration
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}
	c.AdServerCurrency = strings.ToUpper(c.AdServerCurrency)

	if errs := c.validate(); len(errs) > 0 {
		return &c, errors.Join(errs...)
	}
	return &c, nil
}

// SetupViper registers the defaults and env bindings. filename may be empty, in which case
// only defaults and environment variables are used.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	v.SetDefault("ad_server_currency", "USD")
	v.SetDefault("currency_converter.fetch_url", "https://cdn.jsdelivr.net/gh/prebid/currency-file@1/latest.json")
	v.SetDefault("currency_converter.fetch_interval_seconds", 1800)
	v.SetDefault("currency_converter.stale_rates_seconds", 0)
	v.SetDefault("bid_adjustments.log_sampling_rate", 0.01)
	v.SetDefault("bid_adjustments.max_concurrent_bidders", 0)
	v.SetDefault("metrics.prometheus.enabled", false)
	v.SetDefault("metrics.prometheus.namespace", "")
	v.SetDefault("metrics.prometheus.subsystem", "")
	v.SetDefault("account_defaults.price_floors.adjust_for_bid_adjustment", true)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("PBS")
	v.AutomaticEnv()
}

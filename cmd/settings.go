package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/folio"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Settings is the configuration of the lots CLI.
//
// It is read from a YAML file, then overridden by FOLIO_* environment
// variables (possibly set in a .env file), then by command-line flags.
type Settings struct {
	Ledger     string `yaml:"ledger"`     // JSONL transactions file
	Prices     string `yaml:"prices"`     // optional JSONL prices file
	Currency   string `yaml:"currency"`   // portfolio currency
	Margin     string `yaml:"margin"`     // maximum margin, zero for a cash account
	Commission string `yaml:"commission"` // commission policy: prorated or first
	LogLevel   string `yaml:"log_level"`  // debug, info, warn, error
	EODHDKey   string `yaml:"eodhd_key"`  // eodhd.com API key, to fetch prices when no prices file is set
	Exchange   string `yaml:"exchange"`   // eodhd exchange of tickers without one
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Ledger:     "transactions.jsonl",
		Currency:   "USD",
		Margin:     "0",
		Commission: "prorated",
		LogLevel:   "warn",
		Exchange:   "US",
	}
}

// envVars maps environment variables to the setting they override.
var envVars = []struct {
	name  string
	field func(*Settings) *string
}{
	{"FOLIO_LEDGER", func(s *Settings) *string { return &s.Ledger }},
	{"FOLIO_PRICES", func(s *Settings) *string { return &s.Prices }},
	{"FOLIO_CURRENCY", func(s *Settings) *string { return &s.Currency }},
	{"FOLIO_MARGIN", func(s *Settings) *string { return &s.Margin }},
	{"FOLIO_COMMISSION", func(s *Settings) *string { return &s.Commission }},
	{"FOLIO_LOG_LEVEL", func(s *Settings) *string { return &s.LogLevel }},
	{"FOLIO_EODHD_KEY", func(s *Settings) *string { return &s.EODHDKey }},
	{"FOLIO_EXCHANGE", func(s *Settings) *string { return &s.Exchange }},
}

// LoadSettings reads the settings from the YAML file at path, if it exists,
// and applies the environment overrides. A .env file in the working
// directory is loaded first, without overriding variables already set.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return s, fmt.Errorf("cannot read settings %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("cannot parse settings %q: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return s, fmt.Errorf("cannot load .env: %w", err)
	}
	for _, v := range envVars {
		if value, ok := os.LookupEnv(v.name); ok {
			*v.field(&s) = value
		}
	}
	return s, nil
}

// Config returns the portfolio configuration described by the settings.
func (s Settings) Config() (folio.Config, error) {
	policy, err := folio.ParseCommissionPolicy(s.Commission)
	if err != nil {
		return folio.Config{}, err
	}
	margin := decimal.Zero
	if s.Margin != "" {
		margin, err = decimal.NewFromString(s.Margin)
		if err != nil {
			return folio.Config{}, fmt.Errorf("invalid margin %q: %w", s.Margin, err)
		}
	}
	if err := folio.ValidateCurrency(s.Currency); err != nil {
		return folio.Config{}, err
	}
	return folio.Config{
		Currency:         s.Currency,
		CommissionPolicy: policy,
		MaximumMargin:    margin,
	}, nil
}

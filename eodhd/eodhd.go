// Package eodhd provides end-of-day share prices from the eodhd.com API.
//
// A Client implements folio.PriceProvider: the price of a ticker on a day is
// the close of the latest trading day on or before it.
package eodhd

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the root of the eodhd API.
const DefaultBaseURL = "https://eodhd.com/api"

// lookback is the number of days fetched before the requested day, to find
// the last close over weekends and holidays.
const lookback = 10

// Config describes how to reach the eodhd API.
type Config struct {
	APIKey   string
	Currency string // currency of the returned prices
	Exchange string // exchange suffix for tickers without one, e.g. "US"
	BaseURL  string // DefaultBaseURL if empty
	CacheDir string // responses are cached on disk for the day, no cache if empty
}

// Client fetches and memoizes close prices.
type Client struct {
	cfg  Config
	http *http.Client

	mu     sync.Mutex
	closes map[string]*date.History[decimal.Decimal]
	loaded map[string]map[date.Date]bool
}

var _ folio.PriceProvider = (*Client)(nil)

// New returns a Client for cfg.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	client := http.DefaultClient
	if cfg.CacheDir != "" {
		client = newDailyCachingClient(cfg.CacheDir)
	}
	return &Client{
		cfg:    cfg,
		http:   client,
		closes: make(map[string]*date.History[decimal.Decimal]),
		loaded: make(map[string]map[date.Date]bool),
	}
}

// Symbol returns the eodhd symbol of a ticker, "AAPL" becomes "AAPL.US".
func (c *Client) Symbol(ticker string) string {
	if strings.Contains(ticker, ".") || c.cfg.Exchange == "" {
		return ticker
	}
	return ticker + "." + c.cfg.Exchange
}

// Price returns the close of ticker on the latest trading day on or before on.
func (c *Client) Price(ticker string, on date.Date) (folio.Money, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded[ticker][on] {
		closes, err := fetchCloses(c.http, c.cfg.BaseURL, c.cfg.APIKey, c.Symbol(ticker), on.Add(-lookback), on)
		if err != nil {
			return folio.Money{}, fmt.Errorf("%w: price of %s on %s: %v", folio.ErrNoDataAvailable, ticker, on, err)
		}
		h, ok := c.closes[ticker]
		if !ok {
			h = new(date.History[decimal.Decimal])
			c.closes[ticker] = h
		}
		for day, v := range closes {
			h.Append(day, v)
		}
		if c.loaded[ticker] == nil {
			c.loaded[ticker] = make(map[date.Date]bool)
		}
		c.loaded[ticker][on] = true
	}

	var (
		last date.Date
		v    decimal.Decimal
		ok   bool
	)
	if h := c.closes[ticker]; h != nil {
		last, v, ok = h.AsOf(on)
	}
	// older closes may be memoized from an earlier window.
	if ok && last.Before(on.Add(-lookback)) {
		ok = false
	}
	if !ok {
		return folio.Money{}, fmt.Errorf("%w: no close for %s on or before %s", folio.ErrNoDataAvailable, ticker, on)
	}
	return folio.M(v, c.cfg.Currency), nil
}

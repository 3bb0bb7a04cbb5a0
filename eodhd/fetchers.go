package eodhd

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// fetchCloses returns the daily closes of an eodhd symbol between from and
// to, both included.
func fetchCloses(client *http.Client, baseURL, apiKey, symbol string, from, to date.Date) (map[date.Date]decimal.Decimal, error) {
	// GET /eod/AAPL.US?fmt=json&from=2024-02-01&to=2024-02-13
	// [{"date":"2024-02-13","open":185.77,"close":185.04,"adjusted_close":184.3, ...}]
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", apiKey)
	q.Set("from", from.String())
	q.Set("to", to.String())
	addr := fmt.Sprintf("%s/eod/%s?%s", baseURL, url.PathEscape(symbol), q.Encode())

	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	content := make([]Info, 0)
	if err := jwget(client, addr, &content); err != nil {
		return nil, err
	}

	closes := make(map[date.Date]decimal.Decimal, len(content))
	for _, info := range content {
		if info.Date.Before(from) || info.Date.After(to) {
			continue
		}
		closes[info.Date] = info.Close
	}
	return closes, nil
}

package folio

import (
	"fmt"
	"sync"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// PriceProvider returns the per-share price of a security on a given day.
//
// Implementations return an error wrapping ErrNoDataAvailable when they have
// no price for that day.
type PriceProvider interface {
	Price(ticker string, on date.Date) (Money, error)
}

// PriceTable is an in-memory PriceProvider. The price on a day is the latest
// known price on or before that day.
type PriceTable struct {
	mu     sync.RWMutex
	cur    string
	prices map[string]*date.History[decimal.Decimal]
}

// NewPriceTable creates an empty table of prices in currency cur.
func NewPriceTable(cur string) *PriceTable {
	return &PriceTable{cur: cur, prices: make(map[string]*date.History[decimal.Decimal])}
}

// Set records the price of ticker on a day, overwriting any previous value for that day.
func (p *PriceTable) Set(ticker string, on date.Date, price decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.prices[ticker]
	if !ok {
		h = new(date.History[decimal.Decimal])
		p.prices[ticker] = h
	}
	h.Append(on, price)
}

// Price implements PriceProvider.
func (p *PriceTable) Price(ticker string, on date.Date) (Money, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.prices[ticker]
	if !ok {
		return Money{}, fmt.Errorf("%w: no price for %q", ErrNoDataAvailable, ticker)
	}
	v, ok := h.ValueAsOf(on)
	if !ok {
		return Money{}, fmt.Errorf("%w: no price for %q on or before %s", ErrNoDataAvailable, ticker, on)
	}
	return M(v, p.cur), nil
}

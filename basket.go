package folio

import (
	"fmt"
	"slices"
	"sync"

	"github.com/etnz/folio/date"
)

// Basket holds the full transaction history of one ticker.
//
// Transactions are only ever added. Add validates the whole timeline so that
// no close ever exceeds the shares open on its own settlement date.
// A Basket is safe for concurrent use.
type Basket struct {
	ticker string

	mu  sync.RWMutex
	txs []Transaction // insertion order

	cacheMu sync.Mutex
	cache   map[date.Date]Holdings
}

// Lot is an opening transaction, or what remains of it, not yet matched by a close.
type Lot struct {
	Ticker     string
	Side       Side
	On         date.Date
	Shares     Quantity // remaining shares
	Price      Money
	Commission Money // of the whole opening transaction
}

// NewBasket creates an empty basket for ticker.
func NewBasket(ticker string) *Basket {
	return &Basket{ticker: ticker}
}

// Ticker returns the security identifier of the basket.
func (b *Basket) Ticker() string { return b.ticker }

// Add appends a share transaction to the basket, or returns an error and
// leaves the basket unchanged.
func (b *Basket) Add(tx Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(tx); err != nil {
		return err
	}
	b.append(tx)
	return nil
}

// Check reports whether tx could be added to the basket, without adding it.
func (b *Basket) Check(tx Transaction) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.check(tx)
}

// check must be called with b.mu held.
func (b *Basket) check(tx Transaction) error {
	if !tx.Kind().IsTrade() {
		return fmt.Errorf("%w: %s is not a share transaction", ErrValidation, tx.Kind())
	}
	if tx.Ticker() != b.ticker {
		return fmt.Errorf("%w: cannot add %s to basket %q", ErrValidation, tx.Ticker(), b.ticker)
	}
	if !tx.Kind().IsClosing() {
		return nil
	}
	timeline := append(slices.Clone(b.txs), tx)
	last := tx.When()
	for _, t := range timeline {
		if t.When().After(last) {
			last = t.When()
		}
	}
	if _, err := matchAll(timeline, last); err != nil {
		return fmt.Errorf("cannot %s %v shares of %s on %s: %w", tx.Kind(), tx.Shares(), b.ticker, tx.When(), err)
	}
	return nil
}

// append must be called with b.mu held.
func (b *Basket) append(tx Transaction) {
	b.txs = append(b.txs, tx)
	b.cacheMu.Lock()
	b.cache = nil
	b.cacheMu.Unlock()
}

// Transactions returns a copy of the basket's transactions in insertion order.
func (b *Basket) Transactions() []Transaction {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.txs)
}

// Holdings returns the holdings realized on or before 'on'.
//
// Results are memoized per date until the next Add.
func (b *Basket) Holdings(on date.Date) (Holdings, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.cacheMu.Lock()
	cached, ok := b.cache[on]
	b.cacheMu.Unlock()
	if ok {
		return slices.Clone(cached), nil
	}

	holdings, err := CalculateHoldings(b.txs, on)
	if err != nil {
		return nil, err
	}
	b.cacheMu.Lock()
	if b.cache == nil {
		b.cache = make(map[date.Date]Holdings)
	}
	b.cache[on] = holdings
	b.cacheMu.Unlock()
	return slices.Clone(Holdings(holdings)), nil
}

// shares returns opened minus closed shares of a side on or before 'on'.
func (b *Basket) shares(side Side, on date.Date) Quantity {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var total Quantity
	for _, tx := range b.txs {
		if tx.When().After(on) || tx.Kind().Side() != side {
			continue
		}
		switch {
		case tx.Kind().IsOpening():
			total = total.Add(tx.Shares())
		case tx.Kind().IsClosing():
			total = total.Sub(tx.Shares())
		}
	}
	return total
}

// LongShares returns the shares owned on day 'on'.
func (b *Basket) LongShares(on date.Date) Quantity { return b.shares(Long, on) }

// ShortShares returns the shares sold short and not yet covered on day 'on'.
func (b *Basket) ShortShares(on date.Date) Quantity { return b.shares(Short, on) }

// OpenShares returns the net position on day 'on': long shares minus short shares.
func (b *Basket) OpenShares(on date.Date) Quantity {
	return b.LongShares(on).Sub(b.ShortShares(on))
}

// OpenLots returns the lots still open on day 'on', long lots first, oldest first.
func (b *Basket) OpenLots(on date.Date) ([]Lot, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	queues, err := matchAll(b.txs, on)
	if err != nil {
		return nil, err
	}
	var res []Lot
	for _, side := range []Side{Long, Short} {
		q, ok := queues[lotKey{b.ticker, side}]
		if !ok {
			continue
		}
		for _, l := range q.lots.open() {
			res = append(res, Lot{
				Ticker:     b.ticker,
				Side:       side,
				On:         l.tx.When(),
				Shares:     l.remaining,
				Price:      l.tx.Price(),
				Commission: l.tx.Commission(),
			})
		}
	}
	return res, nil
}

// AverageCost returns the average open price of the long shares still held
// on day 'on'. It is undefined when no long share is held.
func (b *Basket) AverageCost(on date.Date) (Money, bool, error) {
	lots, err := b.OpenLots(on)
	if err != nil {
		return Money{}, false, err
	}
	var cost Money
	var shares Quantity
	for _, l := range lots {
		if l.Side != Long {
			continue
		}
		cost = cost.Add(l.Price.Mul(l.Shares))
		shares = shares.Add(l.Shares)
	}
	if !shares.IsPositive() {
		return Money{}, false, nil
	}
	return cost.Div(shares), true, nil
}

// Cost returns the value spent opening positions on or before 'on'.
func (b *Basket) Cost(on date.Date) Money { return Cost(b.Transactions(), on) }

// Proceeds returns the value received closing positions on or before 'on'.
func (b *Basket) Proceeds(on date.Date) Money { return Proceeds(b.Transactions(), on) }

// Commissions returns the commissions paid on or before 'on'.
func (b *Basket) Commissions(on date.Date) Money { return Commissions(b.Transactions(), on) }

// MarketValue returns the value of the open shares on day 'on', negative for a net short position.
func (b *Basket) MarketValue(on date.Date, prices PriceProvider) (Money, error) {
	shares := b.OpenShares(on)
	if shares.IsZero() {
		return Money{}, nil
	}
	price, err := prices.Price(b.ticker, on)
	if err != nil {
		return Money{}, fmt.Errorf("cannot value %v shares of %s on %s: %w", shares, b.ticker, on, err)
	}
	return price.Mul(shares), nil
}

// commit appends tx without checking it, callers must have checked it first.
func (b *Basket) commit(tx Transaction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.append(tx)
}

// clone returns an independent copy of the basket.
func (b *Basket) clone() *Basket {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Basket{ticker: b.ticker, txs: slices.Clone(b.txs)}
}

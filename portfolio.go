package folio

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/etnz/folio/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Config is the explicit configuration of a Portfolio.
type Config struct {
	// Currency of the cash account and of every transaction.
	Currency string
	// CommissionPolicy attributes commissions to holdings in profit and return calculations.
	CommissionPolicy CommissionPolicy
	// MaximumMargin is how far below zero the cash balance may go. Zero is a plain cash account.
	MaximumMargin decimal.Decimal
}

// Portfolio owns one Basket per ticker and one CashAccount.
//
// Transactions are routed by kind: trades go to their ticker's basket and
// move cash according to Transaction.CashFlow, a DividendReinvestment only
// adds shares, and Deposit, Withdrawal and DividendReceipt only move cash.
// Adding a transaction is all-or-nothing.
//
// A Portfolio is safe for concurrent use.
type Portfolio struct {
	cfg Config

	mu      sync.RWMutex
	baskets map[string]*Basket
	cash    *CashAccount
	journal []Transaction // accepted transactions, in insertion order
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio(cfg Config) (*Portfolio, error) {
	if err := ValidateCurrency(cfg.Currency); err != nil {
		return nil, err
	}
	if cfg.MaximumMargin.IsNegative() {
		return nil, fmt.Errorf("maximum margin must not be negative, got %v", cfg.MaximumMargin)
	}
	cash, err := NewMarginableCashAccount(cfg.Currency, M(cfg.MaximumMargin, cfg.Currency))
	if err != nil {
		return nil, err
	}
	return &Portfolio{
		cfg:     cfg,
		baskets: make(map[string]*Basket),
		cash:    cash,
	}, nil
}

// RestorePortfolio creates a portfolio and adds txs in order, as a snapshot
// taken with Transactions would be restored.
func RestorePortfolio(cfg Config, txs []Transaction) (*Portfolio, error) {
	p, err := NewPortfolio(cfg)
	if err != nil {
		return nil, err
	}
	for i, tx := range txs {
		if err := p.AddTransaction(tx); err != nil {
			return nil, fmt.Errorf("transaction #%d: %w", i+1, err)
		}
	}
	return p, nil
}

// Config returns the portfolio configuration.
func (p *Portfolio) Config() Config { return p.cfg }

// change is the validated effect of a transaction, ready to be committed.
type change struct {
	basket    *Basket // nil for cash transactions
	newBasket bool
	cash      []CashEntry
}

// plan validates tx against the current state and returns its effect.
// It must be called with p.mu held.
func (p *Portfolio) plan(tx Transaction) (change, error) {
	var c change
	if !tx.Kind().valid() || tx.When().IsZero() {
		return c, fmt.Errorf("%w: %s is not a valid transaction", ErrValidation, tx)
	}
	if cur := tx.Currency(); cur != "" && cur != p.cfg.Currency {
		return c, fmt.Errorf("%w: cannot add %s transaction in a %s portfolio", ErrValidation, cur, p.cfg.Currency)
	}

	if tx.Kind().IsTrade() {
		b, ok := p.baskets[tx.Ticker()]
		if !ok {
			b, c.newBasket = NewBasket(tx.Ticker()), true
		}
		if err := b.Check(tx); err != nil {
			return c, err
		}
		c.basket = b
	}
	if flow := tx.CashFlow(); !flow.IsZero() {
		c.cash = []CashEntry{{On: tx.When(), Kind: tx.Kind(), Amount: flow}}
		if err := p.cash.Check(c.cash...); err != nil {
			return c, fmt.Errorf("cannot %s: %w", tx, err)
		}
	}
	return c, nil
}

// AddTransaction validates tx and applies it, or returns an error and leaves
// the portfolio unchanged.
func (p *Portfolio) AddTransaction(tx Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, err := p.plan(tx)
	if err != nil {
		log.Warn().Err(err).Str("ticker", tx.Ticker()).Stringer("kind", tx.Kind()).Stringer("date", tx.When()).Msg("transaction rejected")
		return err
	}
	if c.basket != nil {
		if c.newBasket {
			p.baskets[tx.Ticker()] = c.basket
		}
		c.basket.commit(tx)
	}
	p.cash.commit(c.cash...)
	p.journal = append(p.journal, tx)
	log.Debug().Str("ticker", tx.Ticker()).Stringer("kind", tx.Kind()).Stringer("date", tx.When()).Stringer("id", tx.ID()).Msg("transaction committed")
	return nil
}

// Validate reports whether tx could be added, using the same checks as
// AddTransaction, without changing the portfolio.
func (p *Portfolio) Validate(tx Transaction) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, err := p.plan(tx)
	return err
}

// IsValid reports whether tx could be added to the portfolio.
func (p *Portfolio) IsValid(tx Transaction) bool { return p.Validate(tx) == nil }

// Transactions returns the accepted transactions in insertion order.
func (p *Portfolio) Transactions() []Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.journal)
}

// Tickers returns the tickers traded in the portfolio, sorted.
func (p *Portfolio) Tickers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.baskets))
}

// Position returns a copy of the basket for ticker.
func (p *Portfolio) Position(ticker string) (*Basket, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.baskets[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPosition, ticker)
	}
	return b.clone(), nil
}

// Cash returns a copy of the cash account.
func (p *Portfolio) Cash() *CashAccount {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cash.clone()
}

// CashBalance returns the cash balance on day 'on'.
func (p *Portfolio) CashBalance(on date.Date) Money { return p.cash.Balance(on) }

// AvailableCash returns the cash that can be spent on day 'on', margin included.
func (p *Portfolio) AvailableCash(on date.Date) Money { return p.cash.Available(on) }

// Cost returns the value spent opening positions on or before 'on'.
func (p *Portfolio) Cost(on date.Date) Money {
	return Cost(p.Transactions(), on).in(p.cfg.Currency)
}

// Proceeds returns the value received closing positions on or before 'on'.
func (p *Portfolio) Proceeds(on date.Date) Money {
	return Proceeds(p.Transactions(), on).in(p.cfg.Currency)
}

// Commissions returns the commissions paid on or before 'on'.
func (p *Portfolio) Commissions(on date.Date) Money {
	return Commissions(p.Transactions(), on).in(p.cfg.Currency)
}

// sortedBaskets returns the baskets sorted by ticker.
func (p *Portfolio) sortedBaskets() []*Basket {
	p.mu.RLock()
	defer p.mu.RUnlock()
	res := make([]*Basket, 0, len(p.baskets))
	for _, t := range slices.Sorted(maps.Keys(p.baskets)) {
		res = append(res, p.baskets[t])
	}
	return res
}

// Holdings returns the holdings realized on or before 'on' across all
// baskets, sorted by ticker, then close date, then open date.
func (p *Portfolio) Holdings(on date.Date) (Holdings, error) {
	baskets := p.sortedBaskets()
	results := make([]Holdings, len(baskets))
	var g errgroup.Group
	for i, b := range baskets {
		g.Go(func() error {
			h, err := b.Holdings(on)
			if err != nil {
				return fmt.Errorf("%s: %w", b.Ticker(), err)
			}
			results[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var all Holdings
	for _, h := range results {
		all = append(all, h...)
	}
	sortHoldings(all)
	return all, nil
}

// Value returns the cash balance plus the market value of the open shares on day 'on'.
func (p *Portfolio) Value(on date.Date, prices PriceProvider) (Money, error) {
	total := p.CashBalance(on)
	for _, b := range p.sortedBaskets() {
		v, err := b.MarketValue(on, prices)
		if err != nil {
			return Money{}, err
		}
		if v.cur != "" && v.cur != p.cfg.Currency {
			return Money{}, fmt.Errorf("cannot value %s in %s, its price is in %s", b.Ticker(), p.cfg.Currency, v.cur)
		}
		total = total.Add(v)
	}
	return total, nil
}

package folio

import (
	"fmt"
	"slices"
	"sync"

	"github.com/etnz/folio/date"
)

// CashEntry is a signed movement on a CashAccount.
type CashEntry struct {
	On     date.Date
	Kind   Kind  // transaction that moved the cash
	Amount Money // positive for a credit, negative for a debit
}

// validate checks the amount sign against the kind of movement.
func (e CashEntry) validate() error {
	if e.On.IsZero() {
		return fmt.Errorf("%w: cash entry date is missing", ErrValidation)
	}
	var credit, debit bool
	switch e.Kind {
	case Deposit, DividendReceipt:
		credit = true
	case Withdrawal, Buy, BuyToCover:
		debit = true
	case Sell, SellShort:
		// commissions may exceed the proceeds.
		credit, debit = true, true
	default:
		return fmt.Errorf("%w: %s moves no cash", ErrValidation, e.Kind)
	}
	switch {
	case e.Amount.IsZero():
		return fmt.Errorf("%w: %s cash entry amount is zero", ErrValidation, e.Kind)
	case e.Amount.IsPositive() && !credit:
		return fmt.Errorf("%w: %s must debit the account, got %v", ErrValidation, e.Kind, e.Amount)
	case e.Amount.IsNegative() && !debit:
		return fmt.Errorf("%w: %s must credit the account, got %v", ErrValidation, e.Kind, e.Amount)
	}
	return nil
}

// CashAccount is an append-only ledger of cash movements in one currency.
//
// The balance on any day never goes below the negative of the maximum
// margin, zero for a plain cash account.
// A CashAccount is safe for concurrent use.
type CashAccount struct {
	cur    string
	margin Money

	mu      sync.RWMutex
	entries []CashEntry
}

// NewCashAccount creates an empty account that cannot be overdrawn.
func NewCashAccount(cur string) *CashAccount {
	return &CashAccount{cur: cur, margin: M(0, cur)}
}

// NewMarginableCashAccount creates an empty account whose balance may go down
// to -maximumMargin. The margin must be in the account currency.
func NewMarginableCashAccount(cur string, maximumMargin Money) (*CashAccount, error) {
	if maximumMargin.cur != "" && maximumMargin.cur != cur {
		return nil, fmt.Errorf("%w: cannot allow a %v margin on a %s account", ErrValidation, maximumMargin, cur)
	}
	if maximumMargin.IsNegative() {
		return nil, fmt.Errorf("%w: maximum margin must not be negative, got %v", ErrValidation, maximumMargin)
	}
	return &CashAccount{cur: cur, margin: maximumMargin.in(cur)}, nil
}

// Currency returns the account currency.
func (c *CashAccount) Currency() string { return c.cur }

// MaximumMargin returns how far below zero the balance may go.
func (c *CashAccount) MaximumMargin() Money { return c.margin }

// Deposit credits the account.
func (c *CashAccount) Deposit(on date.Date, amount Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit amount must be positive, got %v", ErrValidation, amount)
	}
	return c.Add(CashEntry{On: on, Kind: Deposit, Amount: amount})
}

// Withdraw debits the account. It fails with ErrInsufficientFunds if the
// balance would go below the allowed margin on any day from 'on'.
func (c *CashAccount) Withdraw(on date.Date, amount Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal amount must be positive, got %v", ErrValidation, amount)
	}
	return c.Add(CashEntry{On: on, Kind: Withdrawal, Amount: amount.Neg()})
}

// Add appends entries to the account atomically, or none of them.
// Each entry amount must be signed as its kind moves cash: credits for
// deposits, debits for withdrawals and purchases.
func (c *CashAccount) Add(entries ...CashEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.check(entries...); err != nil {
		return err
	}
	c.append(entries...)
	return nil
}

// Check reports whether entries could be added, without adding them.
func (c *CashAccount) Check(entries ...CashEntry) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.check(entries...)
}

// check must be called with c.mu held.
func (c *CashAccount) check(entries ...CashEntry) error {
	if len(entries) == 0 {
		return nil
	}
	from := entries[0].On
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return err
		}
		if e.Amount.cur != "" && e.Amount.cur != c.cur {
			return fmt.Errorf("%w: cannot move %v on a %s account", ErrValidation, e.Amount, c.cur)
		}
		if e.On.Before(from) {
			from = e.On
		}
	}

	timeline := append(slices.Clone(c.entries), entries...)
	slices.SortStableFunc(timeline, func(a, b CashEntry) int { return a.On.Compare(b.On) })

	floor := c.margin.Neg()
	balance := M(0, c.cur)
	for i, e := range timeline {
		balance = balance.Add(e.Amount)
		// balances are checked at the end of each day, from the first new entry.
		if i+1 < len(timeline) && timeline[i+1].On == e.On {
			continue
		}
		if e.On.Before(from) {
			continue
		}
		if balance.LessThan(floor) {
			return fmt.Errorf("%w: on %s, balance would be %v, below %v", ErrInsufficientFunds, e.On, balance, floor)
		}
	}
	return nil
}

// append must be called with c.mu held.
func (c *CashAccount) append(entries ...CashEntry) {
	for _, e := range entries {
		e.Amount = e.Amount.in(c.cur)
		c.entries = append(c.entries, e)
	}
}

// Balance returns the sum of the entries settled on or before 'on'.
func (c *CashAccount) Balance(on date.Date) Money {
	c.mu.RLock()
	defer c.mu.RUnlock()
	balance := M(0, c.cur)
	for _, e := range c.entries {
		if !e.On.After(on) {
			balance = balance.Add(e.Amount)
		}
	}
	return balance
}

// Available returns the cash that can be spent on day 'on', margin included.
func (c *CashAccount) Available(on date.Date) Money {
	return c.Balance(on).Add(c.margin)
}

// Entries returns a copy of the account entries in insertion order.
func (c *CashAccount) Entries() []CashEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entries)
}

// clone returns an independent copy of the account.
func (c *CashAccount) clone() *CashAccount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &CashAccount{cur: c.cur, margin: c.margin, entries: slices.Clone(c.entries)}
}

// commit appends entries without checking them, callers must have checked them first.
func (c *CashAccount) commit(entries ...CashEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.append(entries...)
}

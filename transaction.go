package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a single financial event: a share
// trade or a cash movement.
//
// Prices are always stored as positive per-share magnitudes, whatever the
// kind. Formulas apply the sign according to the kind, see CashFlow.
type Transaction struct {
	kind       Kind
	on         date.Date
	ticker     string
	shares     Quantity
	price      Money // per share, trades only.
	amount     Money // cash kinds only.
	commission Money
	memo       string
}

// NewTrade creates a share transaction (Buy, Sell, SellShort, BuyToCover or
// DividendReinvestment). It returns an error wrapping ErrValidation if the
// transaction is malformed.
func NewTrade(kind Kind, on date.Date, ticker string, shares Quantity, price, commission Money, memo string) (Transaction, error) {
	tx := Transaction{
		kind:       kind,
		on:         on,
		ticker:     ticker,
		shares:     shares,
		price:      price,
		commission: commission,
		memo:       memo,
	}
	if !kind.IsTrade() {
		return Transaction{}, fmt.Errorf("%w: %s is not a share transaction", ErrValidation, kind)
	}
	return tx.normalized()
}

// NewCashTransaction creates a cash movement (Deposit, Withdrawal or
// DividendReceipt). The ticker is only meaningful for a DividendReceipt, to
// record which security paid it.
func NewCashTransaction(kind Kind, on date.Date, ticker string, amount Money, memo string) (Transaction, error) {
	tx := Transaction{
		kind:   kind,
		on:     on,
		ticker: ticker,
		amount: amount,
		memo:   memo,
	}
	if kind.IsTrade() || !kind.valid() {
		return Transaction{}, fmt.Errorf("%w: %s is not a cash transaction", ErrValidation, kind)
	}
	return tx.normalized()
}

// NewBuy creates a Buy transaction.
func NewBuy(on date.Date, ticker string, shares Quantity, price, commission Money) (Transaction, error) {
	return NewTrade(Buy, on, ticker, shares, price, commission, "")
}

// NewSell creates a Sell transaction.
func NewSell(on date.Date, ticker string, shares Quantity, price, commission Money) (Transaction, error) {
	return NewTrade(Sell, on, ticker, shares, price, commission, "")
}

// NewSellShort creates a SellShort transaction.
func NewSellShort(on date.Date, ticker string, shares Quantity, price, commission Money) (Transaction, error) {
	return NewTrade(SellShort, on, ticker, shares, price, commission, "")
}

// NewBuyToCover creates a BuyToCover transaction.
func NewBuyToCover(on date.Date, ticker string, shares Quantity, price, commission Money) (Transaction, error) {
	return NewTrade(BuyToCover, on, ticker, shares, price, commission, "")
}

// NewDividendReinvestment creates a DividendReinvestment transaction, it never carries a commission.
func NewDividendReinvestment(on date.Date, ticker string, shares Quantity, price Money) (Transaction, error) {
	return NewTrade(DividendReinvestment, on, ticker, shares, price, Money{}, "")
}

// NewDeposit creates a Deposit transaction.
func NewDeposit(on date.Date, amount Money) (Transaction, error) {
	return NewCashTransaction(Deposit, on, "", amount, "")
}

// NewWithdrawal creates a Withdrawal transaction.
func NewWithdrawal(on date.Date, amount Money) (Transaction, error) {
	return NewCashTransaction(Withdrawal, on, "", amount, "")
}

// NewDividendReceipt creates a DividendReceipt paid by ticker.
func NewDividendReceipt(on date.Date, ticker string, amount Money) (Transaction, error) {
	return NewCashTransaction(DividendReceipt, on, ticker, amount, "")
}

// normalized spreads the transaction currency on its zero amounts and validates it.
func (t Transaction) normalized() (Transaction, error) {
	if err := t.validate(); err != nil {
		return Transaction{}, err
	}
	cur := t.Currency()
	t.price = t.price.in(cur)
	t.amount = t.amount.in(cur)
	t.commission = t.commission.in(cur)
	return t, nil
}

// validate checks the transaction's shape, independently of any position or account.
func (t Transaction) validate() error {
	var errs []error
	if !t.kind.valid() {
		errs = append(errs, fmt.Errorf("unknown kind %d", int(t.kind)))
	}
	if t.on.IsZero() {
		errs = append(errs, errors.New("settlement date is missing"))
	}
	if t.commission.IsNegative() {
		errs = append(errs, fmt.Errorf("commission must not be negative, got %v", t.commission))
	}

	switch {
	case t.kind.IsTrade():
		if t.ticker == "" {
			errs = append(errs, errors.New("ticker is missing"))
		}
		if !t.shares.IsPositive() {
			errs = append(errs, fmt.Errorf("shares must be positive, got %v", t.shares))
		}
		if t.kind.IsOpening() && !t.price.IsPositive() {
			errs = append(errs, fmt.Errorf("opening price must be positive, got %v", t.price))
		}
		if t.kind.IsClosing() && t.price.IsNegative() {
			errs = append(errs, fmt.Errorf("closing price must not be negative, got %v", t.price))
		}
		if t.kind == DividendReinvestment && !t.commission.IsZero() {
			errs = append(errs, fmt.Errorf("dividend reinvestment carries no commission, got %v", t.commission))
		}
		if !t.amount.IsZero() {
			errs = append(errs, errors.New("share transactions carry no cash amount"))
		}
	case t.kind.valid():
		if !t.shares.IsZero() {
			errs = append(errs, fmt.Errorf("cash transactions carry no shares, got %v", t.shares))
		}
		if !t.price.IsZero() {
			errs = append(errs, fmt.Errorf("cash transactions carry no price, got %v", t.price))
		}
		if !t.amount.IsPositive() {
			errs = append(errs, fmt.Errorf("amount must be positive, got %v", t.amount))
		}
		if !t.commission.IsZero() {
			errs = append(errs, fmt.Errorf("cash transactions carry no commission, got %v", t.commission))
		}
		if t.kind != DividendReceipt && t.ticker != "" {
			errs = append(errs, fmt.Errorf("%s is not related to a security, got %q", t.kind, t.ticker))
		}
	}

	var cur string
	for _, m := range []Money{t.price, t.amount, t.commission} {
		switch {
		case m.cur == "":
		case cur == "":
			if err := ValidateCurrency(m.cur); err != nil {
				errs = append(errs, err)
			}
			cur = m.cur
		case m.cur != cur:
			errs = append(errs, fmt.Errorf("currency mismatch %s != %s", cur, m.cur))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s on %s: %w", ErrValidation, t.kind, t.on, errors.Join(errs...))
	}
	return nil
}

// Kind returns the kind of financial event.
func (t Transaction) Kind() Kind { return t.kind }

// When returns the settlement date.
func (t Transaction) When() date.Date { return t.on }

// Ticker returns the security identifier, empty for pure cash transactions.
func (t Transaction) Ticker() string { return t.ticker }

// Shares returns the quantity traded, zero for cash transactions.
func (t Transaction) Shares() Quantity { return t.shares }

// Price returns the positive per-share price, zero for cash transactions.
func (t Transaction) Price() Money { return t.price }

// Commission returns the fee paid for the transaction.
func (t Transaction) Commission() Money { return t.commission }

// Memo returns the optional note attached to the transaction.
func (t Transaction) Memo() string { return t.memo }

// WithMemo returns a copy of t with a memo.
func (t Transaction) WithMemo(memo string) Transaction {
	t.memo = memo
	return t
}

// Currency returns the currency of the transaction, empty if unspecified.
func (t Transaction) Currency() string {
	for _, m := range []Money{t.price, t.amount, t.commission} {
		if m.cur != "" {
			return m.cur
		}
	}
	return ""
}

// Amount returns the gross value of the transaction: price times shares for
// trades, the cash amount otherwise.
func (t Transaction) Amount() Money {
	if t.kind.IsTrade() {
		return t.price.Mul(t.shares)
	}
	return t.amount
}

// CashFlow returns the signed effect of the transaction on a cash account.
//
// Buy and BuyToCover pay the shares and the commission, Sell and SellShort
// receive the shares' value minus the commission. A DividendReinvestment is
// paid by the dividend itself and does not move cash.
func (t Transaction) CashFlow() Money {
	cur := t.Currency()
	switch t.kind {
	case Buy, BuyToCover:
		return t.Amount().Add(t.commission).Neg().in(cur)
	case Sell, SellShort:
		return t.Amount().Sub(t.commission).in(cur)
	case Deposit, DividendReceipt:
		return t.amount
	case Withdrawal:
		return t.amount.Neg()
	default:
		return M(0, cur)
	}
}

// Equal reports whether t and o record the same event, field by field.
func (t Transaction) Equal(o Transaction) bool {
	return t.kind == o.kind &&
		t.on == o.on &&
		t.ticker == o.ticker &&
		t.memo == o.memo &&
		t.shares.Equal(o.shares) &&
		t.price.Equal(o.price) &&
		t.amount.Equal(o.amount) &&
		t.commission.Equal(o.commission)
}

var transactionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/etnz/folio/transaction"))

// ID returns a stable identifier derived from the transaction content.
// Equal transactions have the same ID.
func (t Transaction) ID() uuid.UUID {
	data, err := t.MarshalJSON()
	if err != nil {
		data = []byte(t.String())
	}
	return uuid.NewSHA1(transactionNamespace, data)
}

// String returns a one-line human description, e.g. "2025-01-02 buy 10 AAPL @ $10.00".
func (t Transaction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", t.on, t.kind)
	if t.kind.IsTrade() {
		fmt.Fprintf(&b, " %v %s @ %v", t.shares, t.ticker, t.price)
	} else {
		fmt.Fprintf(&b, " %v", t.amount)
		if t.ticker != "" {
			fmt.Fprintf(&b, " from %s", t.ticker)
		}
	}
	if !t.commission.IsZero() {
		fmt.Fprintf(&b, " fee %v", t.commission)
	}
	return b.String()
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	f := jsonFields{}.
		with("command", t.kind).
		with("date", t.on).
		withOptional("ticker", t.ticker)
	if t.kind.IsTrade() {
		f = f.with("shares", t.shares.value).with("price", t.price.value)
	} else {
		f = f.with("amount", t.amount.value)
	}
	if !t.commission.IsZero() {
		f = f.with("commission", t.commission.value)
	}
	return f.withOptional("currency", t.Currency()).
		withOptional("memo", t.memo).
		MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
// The decoded transaction is validated like a constructed one.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		Command    Kind            `json:"command"`
		Date       date.Date       `json:"date"`
		Ticker     string          `json:"ticker"`
		Shares     decimal.Decimal `json:"shares"`
		Price      decimal.Decimal `json:"price"`
		Amount     decimal.Decimal `json:"amount"`
		Commission decimal.Decimal `json:"commission"`
		Currency   string          `json:"currency"`
		Memo       string          `json:"memo"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	var tx Transaction
	var err error
	if temp.Command.IsTrade() {
		tx, err = NewTrade(temp.Command, temp.Date, temp.Ticker, Q(temp.Shares),
			M(temp.Price, temp.Currency), M(temp.Commission, temp.Currency), temp.Memo)
	} else {
		tx, err = NewCashTransaction(temp.Command, temp.Date, temp.Ticker, M(temp.Amount, temp.Currency), temp.Memo)
		if err == nil && !temp.Commission.IsZero() {
			err = fmt.Errorf("%w: cash transactions carry no commission, got %v", ErrValidation, temp.Commission)
		}
	}
	if err != nil {
		return err
	}
	*t = tx
	return nil
}

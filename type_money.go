package folio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact amount in a currency.
//
// A Money without currency, like the zero value, adopts the currency of the
// other operand of Add and Sub.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M returns value in currency, e.g. M(12.5, "USD").
func M[T number](value T, currency string) Money {
	return Money{value: toDecimal(value), cur: currency}
}

// ValidateCurrency checks that code is an ISO 4217 currency.
func ValidateCurrency(code string) error {
	if code == "" {
		return errors.New("currency is missing")
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }

// Float64 returns the nearest float64, for statistics only.
func (m Money) Float64() float64 { return m.value.InexactFloat64() }

// common returns the currency of an operation on m and n.
// Mixing two currencies is a programming error, transactions are validated against it.
func (m Money) common(n Money) string {
	switch {
	case m.cur == "":
		return n.cur
	case n.cur == "" || n.cur == m.cur:
		return m.cur
	}
	panic(fmt.Sprintf("currency mismatch %s != %s", m.cur, n.cur))
}

// in returns m in currency cur if it has none.
func (m Money) in(cur string) Money {
	if m.cur == "" {
		m.cur = cur
	}
	return m
}

func (m Money) Add(n Money) Money    { return Money{m.value.Add(n.value), m.common(n)} }
func (m Money) Sub(n Money) Money    { return Money{m.value.Sub(n.value), m.common(n)} }
func (m Money) Mul(q Quantity) Money { return Money{m.value.Mul(q.value), m.cur} }
func (m Money) Div(q Quantity) Money { return Money{m.value.Div(q.value), m.cur} }
func (m Money) Neg() Money           { return Money{m.value.Neg(), m.cur} }
func (m Money) Abs() Money           { return Money{m.value.Abs(), m.cur} }

// Ratio returns m/n, false when n is zero.
func (m Money) Ratio(n Money) (float64, bool) {
	if n.value.IsZero() {
		return 0, false
	}
	return m.value.Div(n.value).InexactFloat64(), true
}

// Equal compares amounts and currencies.
func (m Money) Equal(n Money) bool    { return m.cur == n.cur && m.value.Equal(n.value) }
func (m Money) LessThan(n Money) bool { return m.value.LessThan(n.value) }
func (m Money) IsZero() bool          { return m.value.IsZero() }
func (m Money) IsPositive() bool      { return m.value.IsPositive() }
func (m Money) IsNegative() bool      { return m.value.IsNegative() }

// String formats m the way its currency is usually displayed, e.g. "$1,234.50",
// rounded to the currency minor unit.
func (m Money) String() string {
	c := money.GetCurrency(m.cur)
	if c == nil {
		return strings.TrimSpace(m.value.StringFixed(2) + " " + m.cur)
	}
	minor := m.value.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, m.cur).Display()
}

// SignedString is like String with a "+" on positive amounts, and "-" for zero.
func (m Money) SignedString() string {
	switch {
	case m.value.IsZero():
		return "-"
	case m.value.IsPositive():
		return "+" + m.String()
	}
	return m.String()
}

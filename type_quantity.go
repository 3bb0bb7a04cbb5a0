package folio

import "github.com/shopspring/decimal"

// number is the set of types Q and M convert from.
type number interface {
	int | int32 | int64 | uint | uint32 | uint64 | float32 | float64 | decimal.Decimal
}

// toDecimal converts a number exactly, floats are converted from their shortest representation.
func toDecimal[T number](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	case float32:
		return decimal.NewFromFloat32(v)
	default:
		return decimal.NewFromFloat(any(value).(float64))
	}
}

// Quantity is an exact, possibly fractional, number of shares.
type Quantity struct {
	value decimal.Decimal
}

// Q returns the Quantity of value shares.
func Q[T number](value T) Quantity { return Quantity{value: toDecimal(value)} }

func (q Quantity) Add(p Quantity) Quantity { return Quantity{q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity { return Quantity{q.value.Sub(p.value)} }
func (q Quantity) Mul(p Quantity) Quantity { return Quantity{q.value.Mul(p.value)} }

// Div returns q/p, p must not be zero.
func (q Quantity) Div(p Quantity) Quantity { return Quantity{q.value.Div(p.value)} }

// Min returns the smaller of q and p.
func (q Quantity) Min(p Quantity) Quantity {
	if p.LessThan(q) {
		return p
	}
	return q
}

func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }

func (q Quantity) Decimal() decimal.Decimal { return q.value }

// Float64 returns the nearest float64, for statistics only.
func (q Quantity) Float64() float64 { return q.value.InexactFloat64() }

func (q Quantity) String() string { return q.value.String() }

// MarshalJSON writes the quantity as a JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) { return q.value.MarshalJSON() }

// UnmarshalJSON reads a quantity from a JSON number or string.
func (q *Quantity) UnmarshalJSON(data []byte) error { return q.value.UnmarshalJSON(data) }

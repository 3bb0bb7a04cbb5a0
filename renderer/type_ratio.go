package renderer

import "fmt"

// Ratio is an optional ratio, rendered as a signed percent or "n/a" when undefined.
type Ratio struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// NewRatio wraps a (value, ok) result.
func NewRatio(v float64, ok bool) Ratio { return Ratio{Value: v, Defined: ok} }

// ratioOf wraps an optional summary ratio.
func ratioOf(v *float64) Ratio {
	if v == nil {
		return Ratio{}
	}
	return Ratio{Value: *v, Defined: true}
}

// String formats 0.125 as "+12.50%", a ratio rounding to zero as "-".
func (r Ratio) String() string {
	if !r.Defined {
		return "n/a"
	}
	s := fmt.Sprintf("%+.2f%%", r.Value*100)
	if s == "+0.00%" || s == "-0.00%" {
		return "-"
	}
	return s
}

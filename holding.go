package folio

import "github.com/etnz/folio/date"

// Holding is a realized lot: a portion of an opening transaction matched with
// a portion of a later closing transaction.
//
// OpenCommission and CloseCommission are the commissions of the whole
// transactions; OpenLot and CloseLot are their share counts, so that the
// commission of the fragment can be attributed according to a
// CommissionPolicy.
type Holding struct {
	Ticker string
	Side   Side
	Head   date.Date // open date
	Tail   date.Date // close date
	Shares Quantity  // matched shares, always positive

	OpenPrice      Money
	OpenCommission Money
	OpenLot        Quantity

	ClosePrice      Money
	CloseCommission Money
	CloseLot        Quantity

	// first fragment cut from the opening (resp. closing) transaction.
	openFirst, closeFirst bool
}

// Cost returns the value of the matched shares at the open price.
func (h Holding) Cost() Money { return h.OpenPrice.Mul(h.Shares) }

// Proceeds returns the value of the matched shares at the close price.
func (h Holding) Proceeds() Money { return h.ClosePrice.Mul(h.Shares) }

// GrossProfit returns the profit before commissions, positive when the trade
// was a winner for its side.
func (h Holding) GrossProfit() Money {
	diff := h.ClosePrice.Sub(h.OpenPrice)
	if h.Side == Short {
		diff = diff.Neg()
	}
	return diff.Mul(h.Shares)
}

// Commission returns the part of the opening and closing commissions
// attributed to this holding.
func (h Holding) Commission(policy CommissionPolicy) Money {
	var opening, closing Money
	switch policy {
	case FirstFragment:
		if h.openFirst {
			opening = h.OpenCommission
		}
		if h.closeFirst {
			closing = h.CloseCommission
		}
	default:
		if h.OpenLot.IsPositive() {
			opening = h.OpenCommission.Mul(h.Shares).Div(h.OpenLot)
		}
		if h.CloseLot.IsPositive() {
			closing = h.CloseCommission.Mul(h.Shares).Div(h.CloseLot)
		}
	}
	return opening.Add(closing).in(h.OpenPrice.cur)
}

// NetProfit returns the profit after the attributed commissions.
func (h Holding) NetProfit(policy CommissionPolicy) Money {
	return h.GrossProfit().Sub(h.Commission(policy))
}

// GrossReturn returns the gross profit relative to the cost, i.e. (close-open)/open for a long holding.
func (h Holding) GrossReturn() (float64, bool) {
	return h.GrossProfit().Ratio(h.Cost())
}

// NetReturn returns the net profit relative to the cost.
func (h Holding) NetReturn(policy CommissionPolicy) (float64, bool) {
	return h.NetProfit(policy).Ratio(h.Cost())
}

// Days returns the number of days the shares were held.
func (h Holding) Days() int { return h.Tail.DaysSince(h.Head) }

// AnnualizedReturn returns the net return scaled to a 365 days year. It is
// undefined for a same-day round trip.
func (h Holding) AnnualizedReturn(policy CommissionPolicy) (float64, bool) {
	r, ok := h.NetReturn(policy)
	if !ok {
		return 0, false
	}
	return annualize(r, h.Days())
}

// annualize scales a return over a number of days to a 365 days year.
func annualize(r float64, days int) (float64, bool) {
	if days <= 0 {
		return 0, false
	}
	return r / (float64(days) / 365.0), true
}

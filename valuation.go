package folio

import (
	"github.com/etnz/folio/date"
	"gonum.org/v1/gonum/stat"
)

// Cost returns the value spent opening positions, i.e. price times shares of
// every opening transaction settled on or before 'on'.
func Cost(txs []Transaction, on date.Date) Money {
	var total Money
	for _, tx := range txs {
		if tx.Kind().IsOpening() && !tx.When().After(on) {
			total = total.Add(tx.Amount())
		}
	}
	return total
}

// Proceeds returns the value received closing positions, i.e. price times
// shares of every closing transaction settled on or before 'on'.
func Proceeds(txs []Transaction, on date.Date) Money {
	var total Money
	for _, tx := range txs {
		if tx.Kind().IsClosing() && !tx.When().After(on) {
			total = total.Add(tx.Amount())
		}
	}
	return total
}

// Commissions returns the commissions of every transaction settled on or before 'on'.
func Commissions(txs []Transaction, on date.Date) Money {
	var total Money
	for _, tx := range txs {
		if !tx.When().After(on) {
			total = total.Add(tx.Commission())
		}
	}
	return total
}

// Holdings is a list of realized holdings, possibly for several tickers.
//
// Ratios are undefined (ok == false) for an empty list: an open position has
// no realized return.
type Holdings []Holding

// Shares returns the total matched shares.
func (hs Holdings) Shares() Quantity {
	var total Quantity
	for _, h := range hs {
		total = total.Add(h.Shares)
	}
	return total
}

// Cost returns the total cost of the matched shares.
func (hs Holdings) Cost() Money {
	var total Money
	for _, h := range hs {
		total = total.Add(h.Cost())
	}
	return total
}

// Proceeds returns the total proceeds of the matched shares.
func (hs Holdings) Proceeds() Money {
	var total Money
	for _, h := range hs {
		total = total.Add(h.Proceeds())
	}
	return total
}

// GrossProfit returns the sum of the holdings' gross profits.
func (hs Holdings) GrossProfit() Money {
	var total Money
	for _, h := range hs {
		total = total.Add(h.GrossProfit())
	}
	return total
}

// Commissions returns the commissions attributed to the holdings.
func (hs Holdings) Commissions(policy CommissionPolicy) Money {
	var total Money
	for _, h := range hs {
		total = total.Add(h.Commission(policy))
	}
	return total
}

// NetProfit returns the gross profit minus the attributed commissions.
func (hs Holdings) NetProfit(policy CommissionPolicy) Money {
	return hs.GrossProfit().Sub(hs.Commissions(policy))
}

// GrossReturn returns the share weighted average of the holdings' gross returns.
func (hs Holdings) GrossReturn() (float64, bool) {
	return hs.weightedReturn(func(h Holding) (float64, bool) { return h.GrossReturn() })
}

// NetReturn returns the share weighted average of the holdings' net returns.
func (hs Holdings) NetReturn(policy CommissionPolicy) (float64, bool) {
	return hs.weightedReturn(func(h Holding) (float64, bool) { return h.NetReturn(policy) })
}

// weightedReturn averages per holding returns with two levels of share
// weights: the holding's share of its ticker, and the ticker's share of all
// the matched shares.
func (hs Holdings) weightedReturn(ret func(Holding) (float64, bool)) (float64, bool) {
	if len(hs) == 0 {
		return 0, false
	}
	total := hs.Shares()
	if !total.IsPositive() {
		return 0, false
	}
	byTicker := make(map[string]Quantity)
	for _, h := range hs {
		byTicker[h.Ticker] = byTicker[h.Ticker].Add(h.Shares)
	}

	xs := make([]float64, 0, len(hs))
	ws := make([]float64, 0, len(hs))
	for _, h := range hs {
		r, ok := ret(h)
		if !ok {
			return 0, false
		}
		group := byTicker[h.Ticker]
		inGroup := h.Shares.Div(group).Float64()
		groupShare := group.Div(total).Float64()
		xs = append(xs, r)
		ws = append(ws, inGroup*groupShare)
	}
	return stat.Mean(xs, ws), true
}

// Span returns the first open date and the last close date of the holdings.
func (hs Holdings) Span() (head, tail date.Date) {
	for i, h := range hs {
		if i == 0 || h.Head.Before(head) {
			head = h.Head
		}
		if i == 0 || h.Tail.After(tail) {
			tail = h.Tail
		}
	}
	return head, tail
}

// AnnualizedReturn scales the net return over the holdings' span to a 365
// days year. It is undefined when the span is empty.
func (hs Holdings) AnnualizedReturn(policy CommissionPolicy) (float64, bool) {
	r, ok := hs.NetReturn(policy)
	if !ok {
		return 0, false
	}
	head, tail := hs.Span()
	return annualize(r, tail.DaysSince(head))
}

// Kelly returns the Kelly percentage of the holdings: the win rate minus the
// loss rate divided by the win/loss ratio, where a win is a holding with a
// positive net profit.
//
// It is undefined without holdings or without a win. Without a loss the
// Kelly percentage is the win rate.
func (hs Holdings) Kelly(policy CommissionPolicy) (float64, bool) {
	if len(hs) == 0 {
		return 0, false
	}
	var gains, losses []float64
	for _, h := range hs {
		p := h.NetProfit(policy)
		if p.IsPositive() {
			gains = append(gains, p.Float64())
		} else {
			losses = append(losses, -p.Float64())
		}
	}
	n := float64(len(hs))
	winRate := float64(len(gains)) / n
	lossRate := float64(len(losses)) / n
	if len(gains) == 0 {
		return 0, false
	}
	if len(losses) == 0 {
		return winRate, true
	}
	avgGain, avgLoss := stat.Mean(gains, nil), stat.Mean(losses, nil)
	if avgLoss == 0 {
		return winRate, true
	}
	return winRate - lossRate/(avgGain/avgLoss), true
}

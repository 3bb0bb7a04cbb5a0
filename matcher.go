package folio

import (
	"cmp"
	"maps"
	"slices"

	"github.com/etnz/folio/date"
)

// lotKey identifies a FIFO queue: one per ticker and side.
type lotKey struct {
	ticker string
	side   Side
}

// CalculateHoldings matches the closing transactions settled on or before
// 'on' against the opening transactions of the same ticker and side, oldest
// first, and returns the realized holdings.
//
// Sells close long lots (Buy, DividendReinvestment), buy-to-covers close
// short lots (SellShort). Cash transactions are ignored. A close that cannot
// be matched returns an error wrapping ErrInvalidPosition.
//
// Holdings are sorted by ticker, then close date, then open date.
func CalculateHoldings(txs []Transaction, on date.Date) ([]Holding, error) {
	queues, err := matchAll(txs, on)
	if err != nil {
		return nil, err
	}
	var holdings []Holding
	for _, q := range queues {
		holdings = append(holdings, q.holdings...)
	}
	sortHoldings(holdings)
	return holdings, nil
}

// matched is the result of matching one lotKey.
type matched struct {
	holdings []Holding
	lots     *lots
}

// matchAll runs the FIFO matching for every ticker and side found in txs.
func matchAll(txs []Transaction, on date.Date) (map[lotKey]*matched, error) {
	opens := make(map[lotKey][]Transaction)
	closes := make(map[lotKey][]Transaction)
	for _, tx := range txs {
		if tx.When().After(on) {
			continue
		}
		k := tx.Kind()
		key := lotKey{tx.Ticker(), k.Side()}
		switch {
		case k.IsOpening():
			opens[key] = append(opens[key], tx)
		case k.IsClosing():
			closes[key] = append(closes[key], tx)
		}
	}

	res := make(map[lotKey]*matched, len(opens))
	for key, o := range opens {
		sortByDate(o)
		res[key] = &matched{lots: newLots(o)}
	}
	keys := slices.SortedFunc(maps.Keys(closes), func(a, b lotKey) int {
		return cmp.Or(cmp.Compare(a.ticker, b.ticker), cmp.Compare(a.side, b.side))
	})
	for _, key := range keys {
		c := closes[key]
		m, ok := res[key]
		if !ok {
			m = &matched{lots: newLots(nil)}
			res[key] = m
		}
		sortByDate(c)
		for _, tx := range c {
			h, err := m.lots.match(tx)
			if err != nil {
				return nil, err
			}
			m.holdings = append(m.holdings, h...)
		}
	}
	return res, nil
}

// sortByDate sorts transactions by settlement date, keeping insertion order for a same day.
func sortByDate(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int { return a.When().Compare(b.When()) })
}

func sortHoldings(holdings []Holding) {
	slices.SortStableFunc(holdings, func(a, b Holding) int {
		return cmp.Or(
			cmp.Compare(a.Ticker, b.Ticker),
			a.Tail.Compare(b.Tail),
			a.Head.Compare(b.Head),
		)
	})
}

package folio

import "fmt"

// lot is an opening transaction and its shares not yet matched by a close.
type lot struct {
	tx        Transaction
	remaining Quantity
}

// lots is a FIFO queue of opening transactions for one ticker and side.
// Closing transactions consume the oldest lots first.
type lots struct {
	queue  []lot
	cursor int // first lot with remaining shares
}

// newLots queues opening transactions, they must be sorted by settlement date.
func newLots(opens []Transaction) *lots {
	l := &lots{queue: make([]lot, 0, len(opens))}
	for _, tx := range opens {
		l.queue = append(l.queue, lot{tx: tx, remaining: tx.Shares()})
	}
	return l
}

// match consumes the shares of a closing transaction from the oldest lots and
// returns one Holding per lot it touched.
func (l *lots) match(closing Transaction) ([]Holding, error) {
	var holdings []Holding
	toMatch := closing.Shares()
	for toMatch.IsPositive() {
		for l.cursor < len(l.queue) && l.queue[l.cursor].remaining.IsZero() {
			l.cursor++
		}
		if l.cursor == len(l.queue) {
			return nil, fmt.Errorf("%w: on %s, cannot %s %v shares of %s, %v shares are not open",
				ErrInvalidPosition, closing.When(), closing.Kind(), closing.Shares(), closing.Ticker(), toMatch)
		}
		open := &l.queue[l.cursor]
		if open.tx.When().After(closing.When()) {
			return nil, fmt.Errorf("%w: on %s, cannot %s %v shares of %s, %v shares are only opened on %s",
				ErrInvalidPosition, closing.When(), closing.Kind(), closing.Shares(), closing.Ticker(), toMatch, open.tx.When())
		}

		matched := open.remaining.Min(toMatch)
		holdings = append(holdings, Holding{
			Ticker:          closing.Ticker(),
			Side:            closing.Kind().Side(),
			Head:            open.tx.When(),
			Tail:            closing.When(),
			Shares:          matched,
			OpenPrice:       open.tx.Price(),
			OpenCommission:  open.tx.Commission(),
			OpenLot:         open.tx.Shares(),
			ClosePrice:      closing.Price(),
			CloseCommission: closing.Commission(),
			CloseLot:        closing.Shares(),
			openFirst:       open.remaining.Equal(open.tx.Shares()),
			closeFirst:      toMatch.Equal(closing.Shares()),
		})
		open.remaining = open.remaining.Sub(matched)
		toMatch = toMatch.Sub(matched)
	}
	return holdings, nil
}

// open returns the lots still holding unmatched shares.
func (l *lots) open() []lot {
	var res []lot
	for _, lt := range l.queue[l.cursor:] {
		if lt.remaining.IsPositive() {
			res = append(res, lt)
		}
	}
	return res
}

package renderer

import (
	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

// Transactions is a list of transactions in ledger order.
type Transactions struct {
	Rows []TransactionRow `json:"rows"`
}

// TransactionRow is a transaction with its cells already formatted.
type TransactionRow struct {
	Date       date.Date `json:"date"`
	Command    string    `json:"command"`
	Ticker     string    `json:"ticker,omitempty"`
	Shares     string    `json:"shares,omitempty"`
	Price      string    `json:"price,omitempty"`
	Amount     string    `json:"amount"`
	Commission string    `json:"commission,omitempty"`
	Memo       string    `json:"memo,omitempty"`
}

// NewTransactions creates the report of txs.
func NewTransactions(txs []folio.Transaction) *Transactions {
	l := &Transactions{Rows: make([]TransactionRow, 0, len(txs))}
	for _, tx := range txs {
		row := TransactionRow{
			Date:    tx.When(),
			Command: tx.Kind().String(),
			Ticker:  tx.Ticker(),
			Amount:  tx.CashFlow().SignedString(),
			Memo:    tx.Memo(),
		}
		if tx.Kind().IsTrade() {
			row.Shares = tx.Shares().String()
			row.Price = tx.Price().String()
		}
		if !tx.Commission().IsZero() {
			row.Commission = tx.Commission().String()
		}
		l.Rows = append(l.Rows, row)
	}
	return l
}

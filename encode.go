package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeTransaction writes a single transaction as a JSON line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %s: %w", tx, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeTransactions writes transactions as JSON lines, in the given order.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTransactions reads JSON lines of transactions, skipping empty lines.
// Each transaction is validated as it is decoded.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading transactions: %w", err)
	}
	return txs, nil
}

// DecodePrices reads JSON lines {"date":"2025-01-02","ticker":"AAPL","price":123.4}
// into a PriceTable in currency cur.
func DecodePrices(r io.Reader, cur string) (*PriceTable, error) {
	table := NewPriceTable(cur)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var p struct {
			Date   date.Date       `json:"date"`
			Ticker string          `json:"ticker"`
			Price  decimal.Decimal `json:"price"`
		}
		if err := json.Unmarshal(lineBytes, &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if p.Ticker == "" || p.Date.IsZero() {
			return nil, fmt.Errorf("line %d: price requires a date and a ticker", line)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("line %d: price must not be negative, got %v", line, p.Price)
		}
		table.Set(p.Ticker, p.Date, p.Price)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading prices: %w", err)
	}
	return table, nil
}

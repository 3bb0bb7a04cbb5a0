package folio

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func newPortfolio(t *testing.T, txs ...Transaction) *Portfolio {
	t.Helper()
	p, err := RestorePortfolio(Config{Currency: "USD"}, txs)
	if err != nil {
		t.Fatalf("RestorePortfolio() error = %v", err)
	}
	return p
}

func TestNewPortfolioConfig(t *testing.T) {
	if _, err := NewPortfolio(Config{}); err == nil {
		t.Errorf("NewPortfolio() without currency succeeded")
	}
	if _, err := NewPortfolio(Config{Currency: "USD", MaximumMargin: decimal.NewFromInt(-1)}); err == nil {
		t.Errorf("NewPortfolio() with a negative margin succeeded")
	}
}

func TestPortfolioRouting(t *testing.T) {
	p := newPortfolio(t,
		deposit(t, day(1), 1000),
		buy(t, day(2), "AAPL", 10, 10, 1),
		sell(t, day(3), "AAPL", 5, 12, 1),
		must(NewSellShort(day(3), "GOOG", Q(2), USD(50), USD(1))),
		must(NewBuyToCover(day(4), "GOOG", Q(2), USD(40), USD(1))),
		must(NewDividendReinvestment(day(5), "AAPL", Q(1), USD(11))),
		must(NewDividendReceipt(day(6), "AAPL", USD(3))),
		must(NewWithdrawal(day(7), USD(100))),
	)
	on := day(7)

	// reinvest is cash neutral.
	if got, want := p.CashBalance(on), USD(1000-101+59+99-81+3-100); !got.Equal(want) {
		t.Errorf("CashBalance() = %v, want %v", got, want)
	}
	if got, want := p.Tickers(), []string{"AAPL", "GOOG"}; !slices.Equal(got, want) {
		t.Errorf("Tickers() = %v, want %v", got, want)
	}
	aapl, err := p.Position("AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := aapl.LongShares(on), Q(6); !got.Equal(want) {
		t.Errorf("AAPL shares = %v, want %v", got, want)
	}
	if got := len(aapl.Transactions()); got != 3 {
		t.Errorf("AAPL basket has %d transactions, want 3", got)
	}
	if _, err := p.Position("MSFT"); !errors.Is(err, ErrUnknownPosition) {
		t.Errorf("Position(MSFT) error = %v, want ErrUnknownPosition", err)
	}

	// opens: 100 + 100 + 11, closes: 60 + 80
	if got, want := p.Cost(on), USD(211); !got.Equal(want) {
		t.Errorf("Cost() = %v, want %v", got, want)
	}
	if got, want := p.Proceeds(on), USD(140); !got.Equal(want) {
		t.Errorf("Proceeds() = %v, want %v", got, want)
	}
	if got, want := p.Commissions(on), USD(4); !got.Equal(want) {
		t.Errorf("Commissions() = %v, want %v", got, want)
	}
	if got := len(p.Transactions()); got != 8 {
		t.Errorf("Transactions() has %d entries, want 8", got)
	}
}

func TestPortfolioAtomicity(t *testing.T) {
	p := newPortfolio(t,
		deposit(t, day(1), 100),
		buy(t, day(2), "AAPL", 5, 10, 0),
	)
	before := p.CashBalance(day(10))

	tests := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"not enough cash", buy(t, day(3), "AAPL", 10, 10, 0), ErrInsufficientFunds},
		{"not enough cash for a new ticker", buy(t, day(3), "GOOG", 10, 10, 0), ErrInsufficientFunds},
		{"oversell", sell(t, day(3), "AAPL", 6, 10, 0), ErrInvalidPosition},
		{"withdraw too much", must(NewWithdrawal(day(3), USD(51))), ErrInsufficientFunds},
		{"other currency", must(NewDeposit(day(3), EUR(10))), ErrValidation},
		{"zero value", Transaction{}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.Validate(tt.tx); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
			if p.IsValid(tt.tx) {
				t.Errorf("IsValid() = true, want false")
			}
			if err := p.AddTransaction(tt.tx); !errors.Is(err, tt.want) {
				t.Errorf("AddTransaction() error = %v, want %v", err, tt.want)
			}
			if got := len(p.Transactions()); got != 2 {
				t.Errorf("portfolio has %d transactions, want 2", got)
			}
			if got := p.CashBalance(day(10)); !got.Equal(before) {
				t.Errorf("CashBalance() = %v, want %v", got, before)
			}
			if got := p.Tickers(); !slices.Equal(got, []string{"AAPL"}) {
				t.Errorf("Tickers() = %v, want [AAPL]", got)
			}
		})
	}
}

func TestPortfolioMargin(t *testing.T) {
	p, err := NewPortfolio(Config{Currency: "USD", MaximumMargin: decimal.NewFromInt(500)})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.AddTransaction(buy(t, day(1), "AAPL", 40, 10, 0)); err != nil {
		t.Errorf("AddTransaction() within margin error = %v", err)
	}
	if err := p.AddTransaction(buy(t, day(1), "AAPL", 20, 10, 0)); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("AddTransaction() beyond margin error = %v, want ErrInsufficientFunds", err)
	}
	if got, want := p.AvailableCash(day(1)), USD(100); !got.Equal(want) {
		t.Errorf("AvailableCash() = %v, want %v", got, want)
	}
}

func TestPortfolioRestore(t *testing.T) {
	txs := []Transaction{
		deposit(t, day(1), 1000),
		buy(t, day(2), "AAPL", 10, 10, 1),
		sell(t, day(3), "AAPL", 10, 12, 1),
	}
	p := newPortfolio(t, txs...)
	restored := newPortfolio(t, p.Transactions()...)
	if got, want := restored.CashBalance(day(3)), p.CashBalance(day(3)); !got.Equal(want) {
		t.Errorf("restored CashBalance() = %v, want %v", got, want)
	}

	_, err := RestorePortfolio(Config{Currency: "USD"}, txs[1:])
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("RestorePortfolio() without deposit error = %v, want ErrInsufficientFunds", err)
	}
}

func TestPortfolioHoldingsAndSummary(t *testing.T) {
	p := newPortfolio(t,
		deposit(t, day(1), 1000),
		buy(t, day(1), "AAPL", 10, 10, 1),
		sell(t, day(10), "AAPL", 10, 15, 1),
		buy(t, day(2), "GOOG", 5, 20, 0),
	)
	holdings, err := p.Holdings(day(10))
	if err != nil {
		t.Fatal(err)
	}
	if len(holdings) != 1 || holdings[0].Ticker != "AAPL" {
		t.Fatalf("Holdings() = %+v, want the AAPL round trip", holdings)
	}

	prices := NewPriceTable("USD")
	prices.Set("GOOG", day(5), decimal.NewFromInt(22))

	value, err := p.Value(day(10), prices)
	if err != nil {
		t.Fatal(err)
	}
	// cash 1000 - 101 + 149 - 100, GOOG 5 * 22
	if want := USD(948 + 110); !value.Equal(want) {
		t.Errorf("Value() = %v, want %v", value, want)
	}

	s, err := p.Summarize(day(10), prices)
	if err != nil {
		t.Fatal(err)
	}
	if !s.NetProfit.Equal(USD(48)) || !s.GrossProfit.Equal(USD(50)) {
		t.Errorf("Summarize() profits = %v, %v, want $50, $48", s.GrossProfit, s.NetProfit)
	}
	if s.NetReturn == nil || !closeTo(*s.NetReturn, 0.48) {
		t.Errorf("Summarize() net return = %v, want 0.48", s.NetReturn)
	}
	if s.MarketValue == nil || !s.MarketValue.Equal(value) {
		t.Errorf("Summarize() market value = %v, want %v", s.MarketValue, value)
	}

	empty, err := p.Summarize(day(5), nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty.NetReturn != nil || empty.Kelly != nil || empty.MarketValue != nil {
		t.Errorf("Summarize() before any close = %+v, want undefined ratios", empty)
	}
}

func TestSummarizeWithoutPrice(t *testing.T) {
	var logs bytes.Buffer
	log.Logger = zerolog.New(&logs)
	t.Cleanup(func() { log.Logger = zerolog.Nop() })

	p := newPortfolio(t,
		deposit(t, day(1), 1000),
		buy(t, day(1), "AAPL", 10, 10, 1),
		sell(t, day(10), "AAPL", 10, 15, 1),
		buy(t, day(11), "MSFT", 1, 20, 0),
	)
	s, err := p.Summarize(day(12), NewPriceTable("USD"))
	if err != nil {
		t.Fatalf("Summarize() error = %v, want nil", err)
	}
	if s.MarketValue != nil {
		t.Errorf("Summarize() market value = %v, want nil", s.MarketValue)
	}
	if s.NetReturn == nil || !closeTo(*s.NetReturn, 0.48) {
		t.Errorf("Summarize() net return = %v, want 0.48", s.NetReturn)
	}
	if !s.NetProfit.Equal(USD(48)) {
		t.Errorf("Summarize() net profit = %v, want $48", s.NetProfit)
	}
	if !strings.Contains(logs.String(), "market value unavailable") {
		t.Errorf("logs = %q, want a market value warning", logs.String())
	}
}

func TestPortfolioConcurrentReads(t *testing.T) {
	p := newPortfolio(t, deposit(t, day(1), 10000))
	var txs []Transaction
	for i := 1; i <= 10; i++ {
		txs = append(txs, buy(t, day(i), "AAPL", 1, 10, 0))
	}
	var wg sync.WaitGroup
	for _, tx := range txs {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.AddTransaction(tx); err != nil {
				t.Errorf("AddTransaction() error = %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := p.Holdings(day(30)); err != nil {
				t.Errorf("Holdings() error = %v", err)
			}
		}()
	}
	wg.Wait()
	aapl, err := p.Position("AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := aapl.LongShares(day(30)), Q(10); !got.Equal(want) {
		t.Errorf("LongShares() = %v, want %v", got, want)
	}
}

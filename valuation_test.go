package folio

import "testing"

// roundTrip is buy 10 @ 10 fee 1 on day 1, sell 10 @ 15 fee 1 on day 10.
func roundTrip(t *testing.T) []Transaction {
	return []Transaction{
		buy(t, day(1), "AAPL", 10, 10, 1),
		sell(t, day(10), "AAPL", 10, 15, 1),
	}
}

func TestRoundTripProfit(t *testing.T) {
	txs := roundTrip(t)
	on := day(10)

	if got, want := Cost(txs, on), USD(100); !got.Equal(want) {
		t.Errorf("Cost() = %v, want %v", got, want)
	}
	if got, want := Proceeds(txs, on), USD(150); !got.Equal(want) {
		t.Errorf("Proceeds() = %v, want %v", got, want)
	}
	if got, want := Commissions(txs, on), USD(2); !got.Equal(want) {
		t.Errorf("Commissions() = %v, want %v", got, want)
	}

	holdings := Holdings(must(CalculateHoldings(txs, on)))
	if got, want := holdings.GrossProfit(), USD(50); !got.Equal(want) {
		t.Errorf("GrossProfit() = %v, want %v", got, want)
	}
	if got, want := holdings.NetProfit(Prorated), USD(48); !got.Equal(want) {
		t.Errorf("NetProfit() = %v, want %v", got, want)
	}
	if got, ok := holdings.GrossReturn(); !ok || !closeTo(got, 0.50) {
		t.Errorf("GrossReturn() = %v, %v, want 0.50", got, ok)
	}
	if got, ok := holdings.NetReturn(Prorated); !ok || !closeTo(got, 0.48) {
		t.Errorf("NetReturn() = %v, %v, want 0.48", got, ok)
	}
	if got, ok := holdings.AnnualizedReturn(Prorated); !ok || !closeTo(got, 0.48*365/9) {
		t.Errorf("AnnualizedReturn() = %v, %v, want %v", got, ok, 0.48*365/9)
	}
}

func TestValuationCutoff(t *testing.T) {
	txs := roundTrip(t)
	on := day(5)
	if got, want := Cost(txs, on), USD(100); !got.Equal(want) {
		t.Errorf("Cost() = %v, want %v", got, want)
	}
	if got := Proceeds(txs, on); !got.IsZero() {
		t.Errorf("Proceeds() = %v, want 0", got)
	}
	if got, want := Commissions(txs, on), USD(1); !got.Equal(want) {
		t.Errorf("Commissions() = %v, want %v", got, want)
	}
}

func TestOpenPositionHasNoReturn(t *testing.T) {
	txs := []Transaction{buy(t, day(1), "AAPL", 10, 10, 1)}
	for _, on := range []int{0, 1, 100} {
		holdings := Holdings(must(CalculateHoldings(txs, day(on))))
		if got, ok := holdings.NetReturn(Prorated); ok {
			t.Errorf("NetReturn(%s) = %v, want undefined", day(on), got)
		}
		if got, ok := holdings.GrossReturn(); ok {
			t.Errorf("GrossReturn(%s) = %v, want undefined", day(on), got)
		}
		if got, ok := holdings.AnnualizedReturn(Prorated); ok {
			t.Errorf("AnnualizedReturn(%s) = %v, want undefined", day(on), got)
		}
	}
}

// holding returns a long holding of shares opened at 100 and closed at 100*(1+r).
func holding(ticker string, shares, r float64) Holding {
	return Holding{
		Ticker: ticker, Side: Long, Head: day(1), Tail: day(2), Shares: Q(shares),
		OpenPrice: USD(100), OpenLot: Q(shares),
		ClosePrice: USD(100 * (1 + r)), CloseLot: Q(shares),
	}
}

func TestHoldingsWeightedReturn(t *testing.T) {
	holdings := Holdings{
		holding("AAPL", 10, 0.5),
		holding("AAPL", 30, 0.1),
		holding("GOOG", 60, -0.2),
	}
	// AAPL: 10/40 and 30/40 of 40% of the shares, GOOG: all of 60%.
	want := 0.5*0.1 + 0.1*0.3 - 0.2*0.6
	if got, ok := holdings.GrossReturn(); !ok || !closeTo(got, want) {
		t.Errorf("GrossReturn() = %v, %v, want %v", got, ok, want)
	}
	if got, ok := holdings.NetReturn(Prorated); !ok || !closeTo(got, want) {
		t.Errorf("NetReturn() without commission = %v, %v, want %v", got, ok, want)
	}
}

func TestKelly(t *testing.T) {
	tests := []struct {
		name     string
		holdings Holdings
		want     float64
		wantOK   bool
	}{
		{"empty", nil, 0, false},
		{"wins and losses", Holdings{
			holding("AAPL", 1, 0.10),
			holding("AAPL", 1, 0.20),
			holding("AAPL", 1, -0.05),
		}, 2.0/3 - (1.0/3)/(15.0/5), true},
		{"no loss", Holdings{holding("AAPL", 1, 0.10), holding("AAPL", 1, 0.30)}, 1, true},
		{"no win", Holdings{holding("AAPL", 1, -0.10)}, 0, false},
		{"break even is a loss", Holdings{holding("AAPL", 1, 0.10), holding("AAPL", 1, 0)}, 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.holdings.Kelly(Prorated)
			if ok != tt.wantOK {
				t.Fatalf("Kelly() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !closeTo(got, tt.want) {
				t.Errorf("Kelly() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHoldingsSpan(t *testing.T) {
	a := holding("AAPL", 1, 0.1)
	a.Head, a.Tail = day(3), day(20)
	b := holding("GOOG", 1, 0.1)
	b.Head, b.Tail = day(1), day(8)
	head, tail := Holdings{a, b}.Span()
	if head != day(1) || tail != day(20) {
		t.Errorf("Span() = %s, %s, want %s, %s", head, tail, day(1), day(20))
	}
}

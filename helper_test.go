package folio

import (
	"os"
	"testing"
	"time"

	"github.com/etnz/folio/date"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestMain(m *testing.M) {
	log.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// day returns the n-th day of January 2025, overflowing into the next months.
func day(n int) date.Date { return date.New(2025, time.January, n) }

// must panics on error, for fixtures that cannot fail.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// closeTo reports whether a and b are equal within 1e-9.
func closeTo(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func buy(t *testing.T, on date.Date, ticker string, shares, price, commission float64) Transaction {
	t.Helper()
	return must(NewBuy(on, ticker, Q(shares), USD(price), USD(commission)))
}

func sell(t *testing.T, on date.Date, ticker string, shares, price, commission float64) Transaction {
	t.Helper()
	return must(NewSell(on, ticker, Q(shares), USD(price), USD(commission)))
}

func deposit(t *testing.T, on date.Date, amount float64) Transaction {
	t.Helper()
	return must(NewDeposit(on, USD(amount)))
}

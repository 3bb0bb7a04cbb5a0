package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// tradeCmd records a share transaction: buy, sell, short, cover or reinvest.
type tradeCmd struct {
	kind       folio.Kind
	date       string
	ticker     string
	shares     string
	price      string
	commission string
	memo       string
}

func (c *tradeCmd) Name() string { return c.kind.String() }

func (c *tradeCmd) Synopsis() string {
	switch c.kind {
	case folio.Buy:
		return "buy shares, paid from the cash account"
	case folio.Sell:
		return "sell shares bought before, first bought first sold"
	case folio.SellShort:
		return "sell borrowed shares"
	case folio.BuyToCover:
		return "buy back shares sold short"
	default:
		return "reinvest a dividend in new shares"
	}
}

func (c *tradeCmd) Usage() string {
	commission := " [-c <commission>]"
	if c.kind == folio.DividendReinvestment {
		commission = ""
	}
	return fmt.Sprintf(`lots %s -s <ticker> -q <shares> -p <price>%s [-d <date>] [-m <memo>]

  %s.
  The transaction is rejected if the ledger cannot accept it.
`, c.kind, commission, c.Synopsis())
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Settlement date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ticker, "s", "", "Security ticker")
	f.StringVar(&c.shares, "q", "", "Number of shares")
	f.StringVar(&c.price, "p", "", "Price per share")
	if c.kind != folio.DividendReinvestment {
		f.StringVar(&c.commission, "c", "0", "Commission paid")
	}
	f.StringVar(&c.memo, "m", "", "Optional memo")
}

func (c *tradeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(tx)
}

// transaction builds the transaction described by the flags.
func (c *tradeCmd) transaction() (folio.Transaction, error) {
	s, err := settings()
	if err != nil {
		return folio.Transaction{}, err
	}
	on, err := parseDate(c.date)
	if err != nil {
		return folio.Transaction{}, err
	}
	shares, err := decimal.NewFromString(c.shares)
	if err != nil {
		return folio.Transaction{}, fmt.Errorf("invalid shares %q: %w", c.shares, err)
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		return folio.Transaction{}, fmt.Errorf("invalid price %q: %w", c.price, err)
	}
	commission := decimal.Zero
	if c.commission != "" {
		if commission, err = decimal.NewFromString(c.commission); err != nil {
			return folio.Transaction{}, fmt.Errorf("invalid commission %q: %w", c.commission, err)
		}
	}
	return folio.NewTrade(c.kind, on, c.ticker, folio.Q(shares),
		folio.M(price, s.Currency), folio.M(commission, s.Currency), c.memo)
}

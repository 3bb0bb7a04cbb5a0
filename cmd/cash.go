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

// cashCmd records a cash movement: deposit, withdraw or dividend.
type cashCmd struct {
	kind   folio.Kind
	date   string
	ticker string
	amount string
	memo   string
}

func (c *cashCmd) Name() string { return c.kind.String() }

func (c *cashCmd) Synopsis() string {
	switch c.kind {
	case folio.Deposit:
		return "deposit cash into the account"
	case folio.Withdrawal:
		return "withdraw cash from the account"
	default:
		return "receive a cash dividend"
	}
}

func (c *cashCmd) Usage() string {
	ticker := ""
	if c.kind == folio.DividendReceipt {
		ticker = " -s <ticker>"
	}
	return fmt.Sprintf(`lots %s%s -a <amount> [-d <date>] [-m <memo>]

  %s.
`, c.kind, ticker, c.Synopsis())
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Settlement date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.amount, "a", "", "Amount of cash")
	if c.kind == folio.DividendReceipt {
		f.StringVar(&c.ticker, "s", "", "Ticker of the security paying the dividend")
	}
	f.StringVar(&c.memo, "m", "", "Optional memo")
}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(tx)
}

// transaction builds the transaction described by the flags.
func (c *cashCmd) transaction() (folio.Transaction, error) {
	s, err := settings()
	if err != nil {
		return folio.Transaction{}, err
	}
	on, err := parseDate(c.date)
	if err != nil {
		return folio.Transaction{}, err
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		return folio.Transaction{}, fmt.Errorf("invalid amount %q: %w", c.amount, err)
	}
	return folio.NewCashTransaction(c.kind, on, c.ticker, folio.M(amount, s.Currency), c.memo)
}

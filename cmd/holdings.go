package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type holdingsCmd struct {
	date   string
	ticker string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list the realized holdings: lots opened and closed" }
func (*holdingsCmd) Usage() string {
	return `lots holdings [-d <date>] [-s <ticker>]

  Matches every sell (resp. cover) against the oldest buys (resp. shorts) of
  the same ticker settled on or before the date, and lists the resulting
  holdings with their commission, net profit and net return.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Report date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.ticker, "s", "", "Only report holdings of this ticker")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := OpenPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	holdings, err := c.holdings(p, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderHoldings(renderer.NewHoldings(on, holdings, p.Config().CommissionPolicy)))
	return subcommands.ExitSuccess
}

// holdings returns the holdings of the portfolio, or of a single ticker.
func (c *holdingsCmd) holdings(p *folio.Portfolio, on date.Date) (folio.Holdings, error) {
	if c.ticker == "" {
		return p.Holdings(on)
	}
	b, err := p.Position(c.ticker)
	if err != nil {
		return nil, err
	}
	return b.Holdings(on)
}

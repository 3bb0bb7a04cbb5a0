package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/google/subcommands"
)

type logCmd struct {
	query  string
	asJSON bool
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list the transactions of the ledger" }
func (*logCmd) Usage() string {
	return `lots log [-q <jsonpath>] [-json]

  Lists the transactions of the ledger in order. With -q, only the
  transactions selected by the jsonpath query are listed. The query is
  evaluated on the array of transactions, e.g.

    lots log -q '$[?(@.ticker == "AAPL" && @.command == "sell")]'
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "jsonpath query selecting transactions")
	f.BoolVar(&c.asJSON, "json", false, "print the transactions as JSON lines")
}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.query != "" {
		if txs, err = filterTransactions(txs, c.query); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	if c.asJSON {
		if err := folio.EncodeTransactions(os.Stdout, txs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderTransactions(renderer.NewTransactions(txs)))
	return subcommands.ExitSuccess
}

// filterTransactions evaluates a jsonpath query on the JSON array of txs and
// returns the transactions it selects.
func filterTransactions(txs []folio.Transaction, query string) ([]folio.Transaction, error) {
	if len(txs) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	v, err := jsonpath.Get(query, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", query, err)
	}
	// jsonpath returns a single value for a non wildcard query.
	selected, ok := v.([]any)
	if !ok {
		selected = []any{v}
	}

	res := make([]folio.Transaction, 0, len(selected))
	for _, s := range selected {
		if _, ok := s.(map[string]any); !ok {
			return nil, fmt.Errorf("query %q must select transactions, got %v", query, s)
		}
		data, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		var tx folio.Transaction
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, err
		}
		res = append(res, tx)
	}
	return res, nil
}

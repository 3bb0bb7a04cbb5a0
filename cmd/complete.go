package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/folio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete runs the shell completion of the lots commands and their flags,
// when invoked by the shell. Otherwise it does nothing.
//
// To enable it in bash, run `COMP_INSTALL=1 lots`.
func Complete(name string) {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(flag.CommandLine),
	}
	for _, c := range commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: predictFlags(fs)}
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	root.Complete(name)
}

func commandNames() []string {
	var names []string
	for _, c := range commands() {
		names = append(names, c.Name())
	}
	return names
}

// predictFlags predicts flag values from their name and usage.
func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case f.Name == "config":
			flags[f.Name] = predict.Files("*.yaml")
		case f.Name == "ledger" || f.Name == "prices":
			flags[f.Name] = predict.Files("*.jsonl")
		case f.Name == "commission":
			flags[f.Name] = predict.Set{"prorated", "first"}
		case f.Name == "log-level":
			flags[f.Name] = predict.Set{"debug", "info", "warn", "error"}
		case strings.Contains(f.Usage, "ticker"):
			flags[f.Name] = predict.Set(tickers())
		case isBool(f):
			flags[f.Name] = predict.Nothing
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// tickers returns the tickers found in the ledger, ignoring errors.
func tickers() []string {
	txs, err := DecodeLedger()
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var res []string
	for _, tx := range txs {
		if t := tx.Ticker(); t != "" && !seen[t] {
			seen[t] = true
			res = append(res, t)
		}
	}
	return res
}

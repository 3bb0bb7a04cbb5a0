// Package cmd implements the lots CLI application to record trades and
// report on realized holdings.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/etnz/folio/eodhd"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range commands() {
		c.Register(cmd, group(cmd))
	}
}

// commands returns all the lots commands.
func commands() []subcommands.Command {
	return []subcommands.Command{
		&tradeCmd{kind: folio.Buy},
		&tradeCmd{kind: folio.Sell},
		&tradeCmd{kind: folio.SellShort},
		&tradeCmd{kind: folio.BuyToCover},
		&tradeCmd{kind: folio.DividendReinvestment},
		&cashCmd{kind: folio.DividendReceipt},
		&cashCmd{kind: folio.Deposit},
		&cashCmd{kind: folio.Withdrawal},
		&holdingsCmd{},
		&summaryCmd{},
		&logCmd{},
		&topicCmd{},
	}
}

func group(c subcommands.Command) string {
	switch c.(type) {
	case *tradeCmd, *cashCmd:
		return "transactions"
	case *topicCmd:
		return "help"
	default:
		return "reports"
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	settingsFile   = flag.String("config", "folio.yaml", "Path to the YAML settings file")
	ledgerFlag     = flag.String("ledger", "", "Path to the ledger file containing transactions (JSONL format)")
	pricesFlag     = flag.String("prices", "", "Path to a JSONL file of prices, to value open positions")
	currencyFlag   = flag.String("currency", "", "Currency of the portfolio")
	marginFlag     = flag.String("margin", "", "Maximum margin of the cash account")
	commissionFlag = flag.String("commission", "", "Commission policy (prorated, first)")
	logLevelFlag   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
)

// settings loads the settings once, flags win over the file and the environment.
var settings = sync.OnceValues(func() (Settings, error) {
	s, err := LoadSettings(*settingsFile)
	if err != nil {
		return s, err
	}
	override := func(dst *string, flagValue string) {
		if flagValue != "" {
			*dst = flagValue
		}
	}
	override(&s.Ledger, *ledgerFlag)
	override(&s.Prices, *pricesFlag)
	override(&s.Currency, *currencyFlag)
	override(&s.Margin, *marginFlag)
	override(&s.Commission, *commissionFlag)
	override(&s.LogLevel, *logLevelFlag)
	setupLogger(s.LogLevel)
	return s, nil
})

// setupLogger configures the global logger to write human readable logs on stderr.
func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()
}

// DecodeLedger reads the transactions of the configured ledger file, an
// absent file is an empty ledger.
func DecodeLedger() ([]folio.Transaction, error) {
	s, err := settings()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(s.Ledger)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("ledger", s.Ledger).Msg("ledger does not exist, starting from an empty ledger")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txs, err := folio.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", s.Ledger, err)
	}
	return txs, nil
}

// OpenPortfolio replays the ledger into a portfolio.
func OpenPortfolio() (*folio.Portfolio, error) {
	s, err := settings()
	if err != nil {
		return nil, err
	}
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	txs, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	p, err := folio.RestorePortfolio(cfg, txs)
	if err != nil {
		return nil, fmt.Errorf("ledger %q is inconsistent: %w", s.Ledger, err)
	}
	return p, nil
}

// DecodePrices returns the price provider of the settings: the prices file
// if configured, eodhd.com if an API key is configured, nil otherwise.
func DecodePrices() (folio.PriceProvider, error) {
	s, err := settings()
	if err != nil {
		return nil, err
	}
	if s.Prices == "" {
		if s.EODHDKey == "" {
			return nil, nil
		}
		return eodhdClient(s), nil
	}
	f, err := os.Open(s.Prices)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	table, err := folio.DecodePrices(f, s.Currency)
	if err != nil {
		return nil, fmt.Errorf("cannot decode prices %q: %w", s.Prices, err)
	}
	return table, nil
}

// eodhdClient returns an eodhd client caching its responses in the user cache.
func eodhdClient(s Settings) *eodhd.Client {
	cfg := eodhd.Config{
		APIKey:   s.EODHDKey,
		Currency: s.Currency,
		Exchange: s.Exchange,
	}
	if dir, err := os.UserCacheDir(); err == nil {
		cfg.CacheDir = filepath.Join(dir, "folio", "eodhd")
	}
	return eodhd.New(cfg)
}

// EncodeTransaction validates tx against the ledger and appends it to the ledger file.
func EncodeTransaction(tx folio.Transaction) subcommands.ExitStatus {
	p, err := OpenPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := p.AddTransaction(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: transaction rejected: %v\n", err)
		return subcommands.ExitFailure
	}

	s, _ := settings()
	filename := s.Ledger
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := folio.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}

// parseDate parses a date flag, today if empty.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// printMarkdown renders markdown for the terminal, or prints it raw if rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Debug().Err(err).Msg("cannot render markdown")
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

package renderer

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func TestMain(m *testing.M) {
	log.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

func day(n int) date.Date { return date.New(2025, time.January, n) }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// parse parses markdown with tables enabled.
func parse(md string) (ast.Node, []byte) {
	source := []byte(md)
	p := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	return p.Parse(text.NewReader(source)), source
}

// outline returns the headings and the number of table body rows of a markdown document.
func outline(t *testing.T, md string) (headings []string, rows int) {
	t.Helper()
	root, source := parse(md)
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			headings = append(headings, string(n.Text(source)))
		case east.KindTableRow:
			rows++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return headings, rows
}

func portfolio(t *testing.T) *folio.Portfolio {
	t.Helper()
	txs := []folio.Transaction{
		must(folio.NewDeposit(day(1), folio.M(1000, "USD"))),
		must(folio.NewBuy(day(1), "AAPL", folio.Q(10), folio.M(10, "USD"), folio.M(1, "USD"))),
		must(folio.NewSell(day(10), "AAPL", folio.Q(4), folio.M(15, "USD"), folio.M(1, "USD"))),
		must(folio.NewSell(day(11), "AAPL", folio.Q(6), folio.M(16, "USD"), folio.M(1, "USD"))),
	}
	return must(folio.RestorePortfolio(folio.Config{Currency: "USD"}, txs))
}

func TestRenderHoldings(t *testing.T) {
	p := portfolio(t)
	holdings := must(p.Holdings(day(11)))
	md := RenderHoldings(NewHoldings(day(11), holdings, folio.Prorated))

	headings, rows := outline(t, md)
	if len(headings) != 1 || headings[0] != "Holdings on 2025-01-11" {
		t.Errorf("headings = %q, want [Holdings on 2025-01-11]", headings)
	}
	// two holdings and the total, the header row is not a TableRow.
	if rows != 3 {
		t.Errorf("table has %d rows, want 3:\n%s", rows, md)
	}
	if !strings.Contains(md, "| AAPL | long | 2025-01-01 | 2025-01-10 | 9 | 4 |") {
		t.Errorf("missing first holding row:\n%s", md)
	}
}

func TestRenderHoldingsEmpty(t *testing.T) {
	md := RenderHoldings(NewHoldings(day(5), nil, folio.Prorated))
	if _, rows := outline(t, md); rows != 0 {
		t.Errorf("table has %d rows, want none:\n%s", rows, md)
	}
	if !strings.Contains(md, "_No realized holdings._") {
		t.Errorf("missing empty notice:\n%s", md)
	}
}

func TestRenderSummary(t *testing.T) {
	p := portfolio(t)
	s := must(p.Summarize(day(11), nil))
	md := RenderSummary(NewSummary(s))

	headings, rows := outline(t, md)
	want := []string{"Summary on 2025-01-11", "Trades", "Cash"}
	if strings.Join(headings, ",") != strings.Join(want, ",") {
		t.Errorf("headings = %q, want %q", headings, want)
	}
	if rows != 12 {
		t.Errorf("tables have %d rows, want 12:\n%s", rows, md)
	}
	if strings.Contains(md, "Total Portfolio Value") {
		t.Errorf("summary without prices shows a portfolio value:\n%s", md)
	}

	empty := must(p.Summarize(day(5), nil))
	if md := RenderSummary(NewSummary(empty)); !strings.Contains(md, "| Net Return | n/a |") {
		t.Errorf("undefined net return is not rendered n/a:\n%s", md)
	}
}

func TestRenderSummaryMargin(t *testing.T) {
	p := must(folio.NewPortfolio(folio.Config{Currency: "USD", MaximumMargin: decimal.NewFromInt(500)}))
	md := RenderSummary(NewSummary(must(p.Summarize(day(1), nil))))
	if !strings.Contains(md, "| Maximum Margin | $500.00 |") {
		t.Errorf("missing maximum margin row:\n%s", md)
	}
	if !strings.Contains(md, "| Available | $500.00 |") {
		t.Errorf("available cash does not include the margin:\n%s", md)
	}
}

func TestRenderTransactions(t *testing.T) {
	p := portfolio(t)
	md := RenderTransactions(NewTransactions(p.Transactions()))
	if _, rows := outline(t, md); rows != 4 {
		t.Errorf("table has %d rows, want 4:\n%s", rows, md)
	}
	if md := RenderTransactions(NewTransactions(nil)); !strings.Contains(md, "_No transactions._") {
		t.Errorf("missing empty notice:\n%s", md)
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		ratio Ratio
		want  string
	}{
		{NewRatio(0.125, true), "+12.50%"},
		{NewRatio(-0.5, true), "-50.00%"},
		{NewRatio(0.00001, true), "-"},
		{NewRatio(0, true), "-"},
		{NewRatio(0, false), "n/a"},
		{ratioOf(nil), "n/a"},
	}
	for _, tt := range tests {
		if got := tt.ratio.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

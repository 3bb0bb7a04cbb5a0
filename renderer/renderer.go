// Package renderer turns portfolio reports into markdown documents.
//
// Each report is a plain struct built from the folio types, rendered with
// text/template files embedded in the binary.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderHoldings renders the realized holdings report to a markdown string.
func RenderHoldings(h *Holdings) string {
	partials := map[string]string{
		"holdings_title": "holdings_title.md",
		"holdings_table": "holdings_table.md",
	}
	return renderTemplate("holdings", "holdings.md", partials, h)
}

// RenderSummary renders the summary report to a markdown string.
func RenderSummary(s *Summary) string {
	partials := map[string]string{
		"summary_title":  "summary_title.md",
		"summary_trades": "summary_trades.md",
		"summary_cash":   "summary_cash.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// RenderTransactions renders a list of transactions to a markdown string.
func RenderTransactions(l *Transactions) string {
	return renderTemplate("transactions", "transactions.md", nil, l)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

package renderer

import (
	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

// Summary is the report of the portfolio metrics on a day.
type Summary struct {
	Date     date.Date              `json:"date"`
	Currency string                 `json:"currency"`
	Policy   folio.CommissionPolicy `json:"policy"`

	Cost        folio.Money `json:"cost"`
	Proceeds    folio.Money `json:"proceeds"`
	Commissions folio.Money `json:"commissions"`

	Holdings         int         `json:"holdings"`
	GrossProfit      folio.Money `json:"grossProfit"`
	NetProfit        folio.Money `json:"netProfit"`
	GrossReturn      Ratio       `json:"grossReturn"`
	NetReturn        Ratio       `json:"netReturn"`
	AnnualizedReturn Ratio       `json:"annualizedReturn"`
	Kelly            Ratio       `json:"kelly"`

	Cash          folio.Money  `json:"cash"`
	AvailableCash folio.Money  `json:"availableCash"`
	MaximumMargin folio.Money  `json:"maximumMargin"`
	MarketValue   *folio.Money `json:"marketValue,omitempty"`
}

// NewSummary creates the report from a portfolio summary.
func NewSummary(s folio.Summary) *Summary {
	return &Summary{
		Date:             s.On,
		Currency:         s.Currency,
		Policy:           s.Policy,
		Cost:             s.Cost,
		Proceeds:         s.Proceeds,
		Commissions:      s.Commissions,
		Holdings:         s.Holdings,
		GrossProfit:      s.GrossProfit,
		NetProfit:        s.NetProfit,
		GrossReturn:      ratioOf(s.GrossReturn),
		NetReturn:        ratioOf(s.NetReturn),
		AnnualizedReturn: ratioOf(s.AnnualizedReturn),
		Kelly:            ratioOf(s.Kelly),
		Cash:             s.Cash,
		AvailableCash:    s.AvailableCash,
		MaximumMargin:    s.MaximumMargin,
		MarketValue:      s.MarketValue,
	}
}

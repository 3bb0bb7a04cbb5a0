package renderer

import (
	"github.com/etnz/folio"
	"github.com/etnz/folio/date"
)

// Holdings is the report of the holdings realized on a day.
type Holdings struct {
	Date   date.Date              `json:"date"`
	Policy folio.CommissionPolicy `json:"policy"`
	Rows   []HoldingRow           `json:"rows"`

	Shares           folio.Quantity `json:"shares"`
	Commission       folio.Money    `json:"commission"`
	GrossProfit      folio.Money    `json:"grossProfit"`
	NetProfit        folio.Money    `json:"netProfit"`
	NetReturn        Ratio          `json:"netReturn"`
	AnnualizedReturn Ratio          `json:"annualizedReturn"`
}

// HoldingRow is a single realized lot.
type HoldingRow struct {
	Ticker     string         `json:"ticker"`
	Side       string         `json:"side"`
	Head       date.Date      `json:"head"`
	Tail       date.Date      `json:"tail"`
	Days       int            `json:"days"`
	Shares     folio.Quantity `json:"shares"`
	OpenPrice  folio.Money    `json:"openPrice"`
	ClosePrice folio.Money    `json:"closePrice"`
	Commission folio.Money    `json:"commission"`
	NetProfit  folio.Money    `json:"netProfit"`
	NetReturn  Ratio          `json:"netReturn"`
}

// NewHoldings creates the report from holdings realized on or before 'on'.
func NewHoldings(on date.Date, holdings folio.Holdings, policy folio.CommissionPolicy) *Holdings {
	h := &Holdings{
		Date:             on,
		Policy:           policy,
		Rows:             make([]HoldingRow, 0, len(holdings)),
		Shares:           holdings.Shares(),
		Commission:       holdings.Commissions(policy),
		GrossProfit:      holdings.GrossProfit(),
		NetProfit:        holdings.NetProfit(policy),
		NetReturn:        NewRatio(holdings.NetReturn(policy)),
		AnnualizedReturn: NewRatio(holdings.AnnualizedReturn(policy)),
	}
	for _, x := range holdings {
		h.Rows = append(h.Rows, HoldingRow{
			Ticker:     x.Ticker,
			Side:       x.Side.String(),
			Head:       x.Head,
			Tail:       x.Tail,
			Days:       x.Days(),
			Shares:     x.Shares,
			OpenPrice:  x.OpenPrice,
			ClosePrice: x.ClosePrice,
			Commission: x.Commission(policy),
			NetProfit:  x.NetProfit(policy),
			NetReturn:  NewRatio(x.NetReturn(policy)),
		})
	}
	return h
}

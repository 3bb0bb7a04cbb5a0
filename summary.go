package folio

import (
	"errors"

	"github.com/etnz/folio/date"
	"github.com/rs/zerolog/log"
)

// Summary gathers the portfolio metrics on a given day.
//
// Ratios are nil when undefined, e.g. without any realized holding.
type Summary struct {
	On       date.Date
	Currency string
	Policy   CommissionPolicy

	Cost        Money
	Proceeds    Money
	Commissions Money

	Holdings    int // realized holdings
	GrossProfit Money
	NetProfit   Money

	GrossReturn      *float64
	NetReturn        *float64
	AnnualizedReturn *float64
	Kelly            *float64

	Cash          Money
	AvailableCash Money
	MaximumMargin Money
	MarketValue   *Money // nil without prices
}

// Summarize computes the Summary of the portfolio on day 'on'.
// prices may be nil, then the market value is not computed. A missing price
// only leaves the market value out, realized figures are still returned.
func (p *Portfolio) Summarize(on date.Date, prices PriceProvider) (Summary, error) {
	holdings, err := p.Holdings(on)
	if err != nil {
		return Summary{}, err
	}
	policy := p.cfg.CommissionPolicy
	cur := p.cfg.Currency
	s := Summary{
		On:               on,
		Currency:         cur,
		Policy:           policy,
		Cost:             p.Cost(on),
		Proceeds:         p.Proceeds(on),
		Commissions:      p.Commissions(on),
		Holdings:         len(holdings),
		GrossProfit:      holdings.GrossProfit().in(cur),
		NetProfit:        holdings.NetProfit(policy).in(cur),
		GrossReturn:      optional(holdings.GrossReturn()),
		NetReturn:        optional(holdings.NetReturn(policy)),
		AnnualizedReturn: optional(holdings.AnnualizedReturn(policy)),
		Kelly:            optional(holdings.Kelly(policy)),
		Cash:             p.CashBalance(on),
		AvailableCash:    p.AvailableCash(on),
		MaximumMargin:    p.cash.MaximumMargin(),
	}
	if prices != nil {
		v, err := p.Value(on, prices)
		switch {
		case errors.Is(err, ErrNoDataAvailable):
			log.Warn().Err(err).Stringer("date", on).Msg("market value unavailable")
		case err != nil:
			return Summary{}, err
		default:
			s.MarketValue = &v
		}
	}
	return s, nil
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

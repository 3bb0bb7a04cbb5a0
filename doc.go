// Package folio models an investment portfolio: share positions, a cash
// account, the transactions that move them, and the analytics derived from
// realized trades.
//
// The core of the package is the lot matching engine. CalculateHoldings pairs
// closing transactions (Sell, BuyToCover) with the oldest opening transactions
// of the same ticker and side (Buy, DividendReinvestment, SellShort) and
// produces Holdings: one realized lot per matched fragment. Cost, proceeds,
// commissions, profits and returns are all computed from holdings or directly
// from the transactions.
//
// Mutations go through a Portfolio, which routes each transaction to its
// Basket and to the CashAccount, and validates the whole timeline before
// committing anything: a transaction is either fully applied or rejected.
//
// Prices are positive per-share magnitudes for every kind of transaction.
// Ratios that may be undefined (no realized holding, same-day round trip,
// no winning trade) are returned with an ok flag instead of NaN.
//
// This package serves as the foundational logic for the `lots` command-line
// tool.
package folio

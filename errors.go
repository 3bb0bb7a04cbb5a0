package folio

import "errors"

var (
	// ErrValidation reports a transaction whose shape is invalid (negative
	// shares, misplaced commission, ...). It is never recoverable.
	ErrValidation = errors.New("invalid transaction")

	// ErrInsufficientFunds reports a cash debit the account cannot cover.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidPosition reports a closing transaction for more shares than are open.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrNoDataAvailable reports a missing price.
	ErrNoDataAvailable = errors.New("no data available")

	// ErrUnknownPosition reports a ticker the portfolio holds no transaction for.
	ErrUnknownPosition = errors.New("unknown position")
)

package folio

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the financial event recorded by a Transaction.
type Kind int

const (
	Buy Kind = iota + 1
	Sell
	SellShort
	BuyToCover
	DividendReceipt
	DividendReinvestment
	Deposit
	Withdrawal
)

var kindNames = map[Kind]string{
	Buy:                  "buy",
	Sell:                 "sell",
	SellShort:            "short",
	BuyToCover:           "cover",
	DividendReceipt:      "dividend",
	DividendReinvestment: "reinvest",
	Deposit:              "deposit",
	Withdrawal:           "withdraw",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind parses a command name ("buy", "short", ...) into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown transaction kind: %q", s)
}

// Kinds returns all the valid kinds in declaration order.
func Kinds() []Kind {
	return []Kind{Buy, Sell, SellShort, BuyToCover, DividendReceipt, DividendReinvestment, Deposit, Withdrawal}
}

func (k Kind) valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsOpening reports whether k adds to a position's open share count.
func (k Kind) IsOpening() bool { return k == Buy || k == SellShort || k == DividendReinvestment }

// IsClosing reports whether k reduces a position's open share count.
func (k Kind) IsClosing() bool { return k == Sell || k == BuyToCover }

// IsTrade reports whether k moves shares.
func (k Kind) IsTrade() bool { return k.IsOpening() || k.IsClosing() }

// Side returns the side of the position the kind opens or closes.
// It is meaningless for cash kinds.
func (k Kind) Side() Side {
	if k == SellShort || k == BuyToCover {
		return Short
	}
	return Long
}

func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Side tells apart shares owned (Long) from shares borrowed and sold (Short).
type Side int

const (
	Long Side = iota
	Short
)

func (s Side) String() string {
	if s == Short {
		return "short"
	}
	return "long"
}

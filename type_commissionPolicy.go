package folio

import "fmt"

// CommissionPolicy defines how a transaction's commission is attributed to the
// holdings it is split into.
type CommissionPolicy int

const (
	// Prorated attributes to each holding the fraction of the commission
	// matching its share of the transaction.
	Prorated CommissionPolicy = iota
	// FirstFragment charges the whole commission to the first holding cut from
	// the transaction, and nothing to the others.
	FirstFragment
)

func (p CommissionPolicy) String() string {
	switch p {
	case Prorated:
		return "prorated"
	case FirstFragment:
		return "first"
	default:
		return "unknown"
	}
}

// ParseCommissionPolicy parses a string into a CommissionPolicy.
func ParseCommissionPolicy(s string) (CommissionPolicy, error) {
	switch s {
	case "prorated", "":
		return Prorated, nil
	case "first":
		return FirstFragment, nil
	default:
		return 0, fmt.Errorf("unknown commission policy: %q", s)
	}
}

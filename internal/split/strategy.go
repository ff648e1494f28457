// Package split computes how an expense is divided among group members.
//
// Each strategy produces one share per participant, including the payer;
// the balance aggregator nets the payer's share against the full amount
// they paid. Share arithmetic uses decimals so shares always sum exactly
// to the expense amount, with any rounding remainder assigned
// deterministically.
package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Type identifies a split strategy.
type Type string

const (
	TypeEqual      Type = "equal"
	TypeExact      Type = "exact"
	TypePercentage Type = "percentage"
)

var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrMissingAmount        = errors.New("exact amount required for all participants")
	ErrMissingPercentage    = errors.New("percentage value required for all participants")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
	ErrPercentageSum        = errors.New("percentages must sum to 100")
	ErrExactSum             = errors.New("exact amounts must sum to the expense amount")
)

// Input is one participant in a split. Amount is set for exact splits,
// Percentage for percentage splits; both are ignored by equal splits.
type Input struct {
	MemberID   string   `json:"member_id"`
	Amount     *float64 `json:"amount,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// Share is one participant's computed share of the expense.
type Share struct {
	MemberID string  `json:"member_id"`
	Amount   float64 `json:"amount"`
}

// Strategy computes shares for a given expense amount.
type Strategy interface {
	Type() Type
	Validate(total float64, participants []Input) error
	Calculate(total float64, participants []Input) ([]Share, error)
}

// New returns the strategy for the given type.
func New(t Type) (Strategy, error) {
	switch t {
	case TypeEqual:
		return equalStrategy{}, nil
	case TypeExact:
		return exactStrategy{}, nil
	case TypePercentage:
		return percentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %q", t)
	}
}

// sumTolerance is the slack allowed when validating that user-supplied
// amounts or percentages add up, one cent either way.
var sumTolerance = decimal.New(1, -2)

func validateBase(total float64, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if total < 0 {
		return ErrNegativeAmount
	}
	return nil
}

package split

import "github.com/shopspring/decimal"

// exactStrategy uses the amount each participant explicitly owes. The
// amounts must sum to the expense total within one cent.
type exactStrategy struct{}

func (exactStrategy) Type() Type { return TypeExact }

func (exactStrategy) Validate(total float64, participants []Input) error {
	if err := validateBase(total, participants); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
		sum = sum.Add(decimal.NewFromFloat(*p.Amount))
	}

	if sum.Sub(decimal.NewFromFloat(total)).Abs().GreaterThan(sumTolerance) {
		return ErrExactSum
	}
	return nil
}

func (s exactStrategy) Calculate(total float64, participants []Input) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{
			MemberID: p.MemberID,
			Amount:   decimal.NewFromFloat(*p.Amount).Round(2).InexactFloat64(),
		}
	}
	return shares, nil
}

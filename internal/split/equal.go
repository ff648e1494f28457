package split

import "github.com/shopspring/decimal"

// equalStrategy divides the amount evenly among all participants. The
// rounding remainder, at most one cent per participant, goes to the first
// participant so that shares sum exactly to the total.
type equalStrategy struct{}

func (equalStrategy) Type() Type { return TypeEqual }

func (equalStrategy) Validate(total float64, participants []Input) error {
	return validateBase(total, participants)
}

func (s equalStrategy) Calculate(total float64, participants []Input) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	n := int64(len(participants))
	totalDec := decimal.NewFromFloat(total).Round(2)
	share := totalDec.DivRound(decimal.NewFromInt(n), 2)

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{MemberID: p.MemberID, Amount: share.InexactFloat64()}
	}

	remainder := totalDec.Sub(share.Mul(decimal.NewFromInt(n)))
	if !remainder.IsZero() {
		shares[0].Amount = share.Add(remainder).InexactFloat64()
	}

	return shares, nil
}

package split

import "github.com/shopspring/decimal"

// percentageStrategy divides the amount by each participant's percentage.
// Percentages must sum to 100 within a hundredth of a percent; the
// rounding remainder goes to the last participant so shares sum exactly
// to the total.
type percentageStrategy struct{}

func (percentageStrategy) Type() Type { return TypePercentage }

func (percentageStrategy) Validate(total float64, participants []Input) error {
	if err := validateBase(total, participants); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if *p.Percentage < 0 || *p.Percentage > 100 {
			return ErrPercentageOutOfRange
		}
		sum = sum.Add(decimal.NewFromFloat(*p.Percentage))
	}

	if sum.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(sumTolerance) {
		return ErrPercentageSum
	}
	return nil
}

func (s percentageStrategy) Calculate(total float64, participants []Input) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	totalDec := decimal.NewFromFloat(total).Round(2)
	hundred := decimal.NewFromInt(100)

	shares := make([]Share, len(participants))
	allocated := decimal.Zero
	for i, p := range participants {
		share := totalDec.Mul(decimal.NewFromFloat(*p.Percentage)).DivRound(hundred, 2)
		allocated = allocated.Add(share)
		shares[i] = Share{MemberID: p.MemberID, Amount: share.InexactFloat64()}
	}

	remainder := totalDec.Sub(allocated)
	if !remainder.IsZero() {
		last := len(shares) - 1
		adjusted := decimal.NewFromFloat(shares[last].Amount).Add(remainder)
		shares[last].Amount = adjusted.InexactFloat64()
	}

	return shares, nil
}

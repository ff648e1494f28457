package simplify

// Stats reports how many transactions simplification saved versus a naive
// settlement where every outstanding balance is cleared individually.
type Stats struct {
	NaivePaymentCount      int `json:"naive_payment_count"`
	SimplifiedPaymentCount int `json:"simplified_payment_count"`
	Savings                int `json:"savings"`
}

// SimplificationStats computes savings for the given balances. It re-runs
// SimplifyDebts internally so the simplified count can never drift from
// the simplifier's actual output.
func SimplificationStats(balances []Balance) Stats {
	outstanding := 0
	for _, b := range balances {
		cents := toCents(b.NetAmount)
		if cents > epsilonCents || cents < -epsilonCents {
			outstanding++
		}
	}

	naive := outstanding - 1
	if naive < 0 {
		naive = 0
	}

	simplified := len(SimplifyDebts(balances))

	savings := naive - simplified
	if savings < 0 {
		savings = 0
	}

	return Stats{
		NaivePaymentCount:      naive,
		SimplifiedPaymentCount: simplified,
		Savings:                savings,
	}
}

// Package simplify implements the debt simplification engine: it takes the
// net balances of a group's members and produces a minimal set of pairwise
// payments that settles all debts.
//
// The simplifier is a pure function with no I/O and no shared state; it is
// safe to call concurrently. All arithmetic happens in integer minor units
// (cents) so there are no floating-point comparisons inside the matching
// loop; amounts cross the API boundary as float64 major units rounded to
// two decimal places.
package simplify

import (
	"math"
	"sort"
)

// Balance is one member's net financial position within a group.
// Positive means the member is owed money, negative means the member owes
// money. Balances within one cent of zero are treated as settled.
type Balance struct {
	MemberID      string  `json:"member_id"`
	MemberName    string  `json:"member_name"`
	NetAmount     float64 `json:"net_amount"`
	IsPlaceholder bool    `json:"is_placeholder"`
}

// Payment is a suggested transfer that settles debt between two members.
// Payments are transient: callers that want a real settlement record
// persist one through the settlements write path.
type Payment struct {
	FromMemberID      string  `json:"from_member_id"`
	FromMemberName    string  `json:"from_member_name"`
	FromIsPlaceholder bool    `json:"from_is_placeholder"`
	ToMemberID        string  `json:"to_member_id"`
	ToMemberName      string  `json:"to_member_name"`
	ToIsPlaceholder   bool    `json:"to_is_placeholder"`
	Amount            float64 `json:"amount"`
}

// epsilonCents is the noise floor: one cent. Working balances at or below
// it count as settled, and transfers at or below it are never emitted.
const epsilonCents int64 = 1

// party is a working copy of a balance; the matching loop mutates cents,
// never the caller's Balance.
type party struct {
	balance Balance
	cents   int64 // remaining amount in minor units, always positive
}

// toCents rounds a major-unit amount to minor units, half away from zero.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

// SimplifyDebts computes the smallest set of payments that settles every
// member's balance. It uses greedy largest-to-largest matching: creditors
// and debtors are sorted descending by magnitude and matched with two
// cursors, transferring min(credit, debt) each step.
//
// Ties in magnitude keep their input order (stable sort), so output order
// is deterministic. Duplicate member ids are not merged; each row is an
// independent balance. The function never fails: empty input yields an
// empty list, and any residue left by an unbalanced input (total credits
// != total debits, an upstream bug) is silently left unpaid.
func SimplifyDebts(balances []Balance) []Payment {
	var creditors, debtors []party
	for _, b := range balances {
		cents := toCents(b.NetAmount)
		switch {
		case cents > epsilonCents:
			creditors = append(creditors, party{balance: b, cents: cents})
		case cents < -epsilonCents:
			debtors = append(debtors, party{balance: b, cents: -cents})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].cents > creditors[j].cents })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].cents > debtors[j].cents })

	var payments []Payment
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		transfer := creditors[i].cents
		if debtors[j].cents < transfer {
			transfer = debtors[j].cents
		}

		if transfer > epsilonCents {
			from := debtors[j].balance
			to := creditors[i].balance
			payments = append(payments, Payment{
				FromMemberID:      from.MemberID,
				FromMemberName:    from.MemberName,
				FromIsPlaceholder: from.IsPlaceholder,
				ToMemberID:        to.MemberID,
				ToMemberName:      to.MemberName,
				ToIsPlaceholder:   to.IsPlaceholder,
				Amount:            fromCents(transfer),
			})
		}

		creditors[i].cents -= transfer
		debtors[j].cents -= transfer

		// Both cursors can advance on the same step when the amounts
		// were exactly equal.
		if creditors[i].cents < epsilonCents {
			i++
		}
		if debtors[j].cents < epsilonCents {
			j++
		}
	}

	return payments
}

// Balanced reports whether the balances sum to zero within the one-cent
// noise floor. SimplifyDebts does not require this precondition; callers
// can use it in tests and diagnostics to catch aggregation bugs upstream.
func Balanced(balances []Balance) bool {
	var sum int64
	for _, b := range balances {
		sum += toCents(b.NetAmount)
	}
	return sum >= -epsilonCents && sum <= epsilonCents
}

// Package balance derives each group member's net position from the
// group's expenses, expense splits, and confirmed settlements. Its output
// feeds the debt simplifier.
package balance

import (
	"github.com/rdevang/smartsplit/internal/models"
	"github.com/rdevang/smartsplit/internal/simplify"
)

// position tracks running totals for one member while folding.
type position struct {
	paid float64
	owed float64
}

// Aggregate computes one net balance per roster member:
//
//   - the payer of an expense contributed its full amount
//   - every split participant owes their share (the payer included)
//   - a confirmed settlement moves value from payer to payee
//   - net = paid - owed; positive means the member is owed money
//
// Pending settlements are ignored until the receiving side confirms them.
// Expenses or settlements referencing members outside the roster are
// skipped; the roster is the source of truth for who exists.
func Aggregate(members []models.Member, expenses []*models.Expense, settlements []*models.Settlement) []simplify.Balance {
	positions := make(map[string]*position, len(members))
	for _, m := range members {
		positions[m.ID] = &position{}
	}

	for _, e := range expenses {
		payer, ok := positions[e.PayerMemberID]
		if !ok {
			continue
		}
		payer.paid += e.Amount
		for _, s := range e.Splits {
			if pos, ok := positions[s.MemberID]; ok {
				pos.owed += s.Amount
			}
		}
	}

	for _, s := range settlements {
		if s.Status != models.SettlementConfirmed {
			continue
		}
		from, okFrom := positions[s.FromMemberID]
		to, okTo := positions[s.ToMemberID]
		if !okFrom || !okTo {
			continue
		}
		from.paid += s.Amount
		to.owed += s.Amount
	}

	balances := make([]simplify.Balance, len(members))
	for i, m := range members {
		pos := positions[m.ID]
		balances[i] = simplify.Balance{
			MemberID:      m.ID,
			MemberName:    m.Name,
			NetAmount:     pos.paid - pos.owed,
			IsPlaceholder: m.IsPlaceholder,
		}
	}
	return balances
}

// TotalSpent sums all expense amounts, for group summary displays.
func TotalSpent(expenses []*models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

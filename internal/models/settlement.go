package models

// Settlement status lifecycle. A settlement is recorded as pending and
// only counts toward balances once the receiving side confirms it.
const (
	SettlementPending   = "pending"
	SettlementConfirmed = "confirmed"
)

// Settlement represents a real payment between group members to clear
// debt, as opposed to the transient payment suggestions the simplifier
// emits.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `json:"group_id"`

	// FromMemberID is the member who paid (debtor settling up).
	FromMemberID string `json:"from_member_id"`

	// ToMemberID is the member who received payment.
	ToMemberID string `json:"to_member_id"`

	// Amount is the payment amount in the group currency.
	Amount float64 `json:"amount"`

	// Status is pending or confirmed.
	Status string `json:"status"`

	// Note is an optional description.
	Note string `json:"note,omitempty"`

	// CreatedBy is the user ID who recorded the settlement.
	CreatedBy string `json:"created_by"`

	// CreatedAt and ConfirmedAt are Unix timestamps. ConfirmedAt is
	// zero while the settlement is pending.
	CreatedAt   int64 `json:"created_at"`
	ConfirmedAt int64 `json:"confirmed_at,omitempty"`
}

package models

// Expense represents one shared cost paid by a single member and split
// among group members.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"group_id"`

	// Description is the human-readable label (e.g., "Groceries").
	Description string `json:"description"`

	// Amount is the full expense amount in the group currency.
	Amount float64 `json:"amount"`

	// PayerMemberID is the member who paid the full amount.
	PayerMemberID string `json:"payer_member_id"`

	// SplitType records how the amount was divided (equal, exact,
	// percentage).
	SplitType string `json:"split_type"`

	// Splits is each member's share. Shares always sum to Amount.
	Splits []ExpenseSplit `json:"splits"`

	// CreatedBy is the user ID who entered the expense.
	CreatedBy string `json:"created_by"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// ExpenseSplit is one member's share of an expense.
type ExpenseSplit struct {
	// MemberID is the member who owes this share.
	MemberID string `json:"member_id"`

	// Amount is the share in the group currency, rounded to cents.
	Amount float64 `json:"amount"`
}

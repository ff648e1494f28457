package models

// Group represents a set of people who share expenses (a trip, a
// household). Every group has a single currency; all balances and
// settlements within it are expressed in that currency's major unit.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Lisbon Trip").
	Name string `json:"name"`

	// Currency is the ISO 4217 code for the group's currency.
	Currency string `json:"currency"`

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string `json:"created_by"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`

	// Members is the group's roster. Populated on reads that need it.
	Members []Member `json:"members,omitempty"`
}

// Member is one person's seat in a group. A member either links to a
// registered user via UserID or is a placeholder for someone without an
// account.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// GroupID is the group this member belongs to.
	GroupID string `json:"group_id"`

	// UserID links to a registered user. Empty for placeholders.
	UserID string `json:"user_id,omitempty"`

	// Name is the display name used in balances and payments.
	Name string `json:"name"`

	// IsPlaceholder marks a member without an account. Placeholders
	// hold balances but cannot log in or confirm settlements.
	IsPlaceholder bool `json:"is_placeholder"`

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64 `json:"created_at"`
}

// Package models defines the core domain models for Smart Split.
//
// Members, not users, are the unit of accounting: every balance, expense
// split, and settlement references a group member. A member may be linked
// to a registered User, or be a placeholder for someone without an
// account. Placeholders can hold balances but cannot authenticate or
// confirm settlements.
//
// Relationships use ID strings rather than pointers to avoid circular
// references between models.
package models

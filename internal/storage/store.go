// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/rdevang/smartsplit/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not
// exist. Handlers map it to a 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned (wrapped) when an insert collides with a
// uniqueness constraint, such as a duplicate member name in a group.
var ErrConflict = errors.New("already exists")

// Store defines the persistence operations the handler layer needs.
// The abstraction allows swapping backends (SQLite, PostgreSQL) without
// touching handlers.
type Store interface {
	// CreateUser persists a new user. Email must be unique.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns the user with the given email, or
	// (nil, nil) if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns the user with the given ID, or (nil, nil) if
	// no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a group together with its initial members.
	// IDs and timestamps are generated for any that are unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup returns a group with its full member roster.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByUser returns all groups where the user holds a
	// member seat, rosters included.
	ListGroupsByUser(ctx context.Context, userID string) ([]*models.Group, error)

	// UpdateGroup updates a group's name and currency.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group and everything in it.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMembers appends members to a group's roster.
	AddMembers(ctx context.Context, groupID string, members []models.Member) error

	// CreateExpense persists an expense together with its splits.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense returns an expense with its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns a group's expenses, newest first,
	// splits included.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a settlement record.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement returns a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlementsByGroup returns a group's settlements, newest
	// first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// ConfirmSettlement marks a pending settlement confirmed.
	ConfirmSettlement(ctx context.Context, settlementID string, confirmedAt int64) error

	// DeleteSettlement removes a settlement by ID.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// CreateFeedback persists a feedback submission.
	CreateFeedback(ctx context.Context, feedback *models.Feedback) error

	// ListFeedback returns all feedback submissions, newest first.
	ListFeedback(ctx context.Context) ([]*models.Feedback, error)

	// Ping verifies the backend is reachable, for health checks.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rdevang/smartsplit/internal/models"
	"github.com/rdevang/smartsplit/internal/storage"
)

// CreateExpense persists an expense together with its splits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, payer_member_id, split_type, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.PayerMemberID, expense.SplitType, expense.CreatedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, split := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, member_id, amount) VALUES (?, ?, ?)",
			expense.ID, split.MemberID, split.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense with its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, amount, payer_member_id, split_type, created_by, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
		&expense.PayerMemberID, &expense.SplitType, &expense.CreatedBy, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	splits, err := s.listSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits
	return expense, nil
}

// ListExpensesByGroup returns a group's expenses, newest first, splits
// included.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, payer_member_id, split_type, created_by, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
			&expense.PayerMemberID, &expense.SplitType, &expense.CreatedBy, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		splits, err := s.listSplits(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}
	return expenses, nil
}

// DeleteExpense removes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireRow(res, "expense", expenseID)
}

func (s *SQLiteStore) listSplits(ctx context.Context, expenseID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, amount FROM expense_splits WHERE expense_id = ? ORDER BY member_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		var split models.ExpenseSplit
		if err := rows.Scan(&split.MemberID, &split.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return splits, nil
}

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

// CreateSettlement persists a new settlement record.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementPending
	}

	var note interface{}
	if settlement.Note != "" {
		note = settlement.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, from_member_id, to_member_id, amount, status, note, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, settlement.FromMemberID, settlement.ToMemberID,
		settlement.Amount, settlement.Status, note, settlement.CreatedBy, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var note sql.NullString
	var confirmedAt sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, from_member_id, to_member_id, amount, status, note, created_by, created_at, confirmed_at
		 FROM settlements WHERE id = ?`,
		settlementID,
	).Scan(&settlement.ID, &settlement.GroupID, &settlement.FromMemberID, &settlement.ToMemberID,
		&settlement.Amount, &settlement.Status, &note, &settlement.CreatedBy, &settlement.CreatedAt, &confirmedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	if note.Valid {
		settlement.Note = note.String
	}
	if confirmedAt.Valid {
		settlement.ConfirmedAt = confirmedAt.Int64
	}
	return settlement, nil
}

// ListSettlementsByGroup returns a group's settlements, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_member_id, to_member_id, amount, status, note, created_by, created_at, confirmed_at
		 FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var note sql.NullString
		var confirmedAt sql.NullInt64

		if err := rows.Scan(&settlement.ID, &settlement.GroupID, &settlement.FromMemberID, &settlement.ToMemberID,
			&settlement.Amount, &settlement.Status, &note, &settlement.CreatedBy, &settlement.CreatedAt, &confirmedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		if note.Valid {
			settlement.Note = note.String
		}
		if confirmedAt.Valid {
			settlement.ConfirmedAt = confirmedAt.Int64
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

// ConfirmSettlement marks a pending settlement confirmed. Confirming an
// already-confirmed settlement is a not-found error, which keeps the
// operation idempotence-safe for double-submits.
func (s *SQLiteStore) ConfirmSettlement(ctx context.Context, settlementID string, confirmedAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE settlements SET status = ?, confirmed_at = ? WHERE id = ? AND status = ?",
		models.SettlementConfirmed, confirmedAt, settlementID, models.SettlementPending,
	)
	if err != nil {
		return fmt.Errorf("failed to confirm settlement: %w", err)
	}
	return requireRow(res, "pending settlement", settlementID)
}

// DeleteSettlement removes a settlement by ID.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, settlementID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	return requireRow(res, "settlement", settlementID)
}

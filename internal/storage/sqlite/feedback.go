package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rdevang/smartsplit/internal/models"
)

// CreateFeedback inserts a new feedback submission.
func (s *SQLiteStore) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.CreatedAt == 0 {
		feedback.CreatedAt = time.Now().Unix()
	}

	var email, name interface{}
	if feedback.Email != "" {
		email = feedback.Email
	}
	if feedback.Name != "" {
		name = feedback.Name
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, type, title, description, email, name, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		feedback.ID, feedback.Type, feedback.Title, feedback.Description, email, name, feedback.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// ListFeedback retrieves all feedback submissions, newest first.
func (s *SQLiteStore) ListFeedback(ctx context.Context) ([]*models.Feedback, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, title, description, email, name, created_at
		 FROM feedback ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var items []*models.Feedback
	for rows.Next() {
		f := &models.Feedback{}
		var email, name sql.NullString
		if err := rows.Scan(&f.ID, &f.Type, &f.Title, &f.Description, &email, &name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		f.Email = email.String
		f.Name = name.String
		items = append(items, f)
	}
	return items, rows.Err()
}

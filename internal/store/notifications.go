package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
)

// Notifications provides access to in-app notifications and implements
// the gamify.Notifier sink.
type Notifications struct {
	db *pgxpool.Pool
}

// NewNotifications creates a notification store over the given pool.
func NewNotifications(db *pgxpool.Pool) *Notifications {
	return &Notifications{db: db}
}

// Notify inserts a new unread notification for the user.
func (s *Notifications) Notify(ctx context.Context, userID uuid.UUID, title, message, notificationType string, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}

	query := `
		INSERT INTO notifications (id, user_id, title, message, type, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
	`

	if _, err := s.db.Exec(ctx, query, uuid.New(), userID, title, message, notificationType, data); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (s *Notifications) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, data, is_read, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = false`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := s.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.Data,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// UnreadCount returns the number of unread notifications for a user.
func (s *Notifications) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks one notification as read, scoped to its owner.
// Returns false when it does not exist or is already read.
func (s *Notifications) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2 AND is_read = false`,
		notificationID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkAllRead marks all of a user's unread notifications as read and
// returns how many were updated.
func (s *Notifications) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// PruneRead deletes read notifications older than the cutoff and returns
// how many were removed. Used by the nightly cleanup job.
func (s *Notifications) PruneRead(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM notifications WHERE is_read = true AND created_at < $1`,
		olderThan,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

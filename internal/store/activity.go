package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Activity aggregates per-user activity counts for the task completion
// checks and the reward progress endpoint.
type Activity struct {
	db *pgxpool.Pool
}

// NewActivity creates an activity store over the given pool.
func NewActivity(db *pgxpool.Pool) *Activity {
	return &Activity{db: db}
}

func (s *Activity) countOwned(ctx context.Context, table string, userID uuid.UUID) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, table)
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// CountPosts returns the number of posts owned by the user.
func (s *Activity) CountPosts(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.countOwned(ctx, "posts", userID)
}

// CountReports returns the number of reports owned by the user.
func (s *Activity) CountReports(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.countOwned(ctx, "reports", userID)
}

// CountBills returns the number of bills owned by the user.
func (s *Activity) CountBills(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.countOwned(ctx, "bills", userID)
}

// LikesReceived sums the likes across the user's posts and reports.
func (s *Activity) LikesReceived(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(likes_count) FROM posts WHERE user_id = $1), 0) +
			COALESCE((SELECT SUM(likes_count) FROM reports WHERE user_id = $1), 0)
	`

	var total int
	if err := s.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum likes received: %w", err)
	}
	return total, nil
}

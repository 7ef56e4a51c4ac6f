// Package gamify implements the gamification rule engine: the points and
// leveling ledger, the usage comparator, the reward claim engine, and the
// task completion checks backing reward eligibility.
package gamify

import (
	"context"

	"github.com/google/uuid"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
)

// UserStore is the persistence contract for user ledger state.
// Implementations must return ErrUserNotFound for lookups of missing users.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// AddPoints atomically increments the user's point balance by delta and
	// recomputes the level from the new balance in the same statement.
	// Returns false when the user does not exist.
	AddPoints(ctx context.Context, id uuid.UUID, delta int) (bool, error)

	// AddCarbonSavings atomically increments the user's saved-carbon
	// accumulator. Returns false when the user does not exist.
	AddCarbonSavings(ctx context.Context, id uuid.UUID, kg float64) (bool, error)

	// ApplyClaim performs the reward claim state transition as a single
	// conditional update: deduct cost and append badge (when non-empty) only
	// if the balance still covers the cost and the badge is still absent.
	// Returns false when the precondition no longer holds, so a concurrent
	// claim that won the race is detected by the caller.
	ApplyClaim(ctx context.Context, id uuid.UUID, cost int, badge string) (bool, error)
}

// RewardStore is the read-only catalog contract.
// Implementations must return ErrRewardNotFound for missing rewards.
type RewardStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Reward, error)
}

// BillStore provides the bill history reads the usage comparator needs.
type BillStore interface {
	// LastTwo returns up to two most recent bills for (user, type),
	// newest first.
	LastTwo(ctx context.Context, userID uuid.UUID, billType string) ([]models.UtilityBill, error)
}

// ActivityStore provides the per-user activity counts consumed by the
// task completion checks.
type ActivityStore interface {
	CountPosts(ctx context.Context, userID uuid.UUID) (int, error)
	CountReports(ctx context.Context, userID uuid.UUID) (int, error)
	CountBills(ctx context.Context, userID uuid.UUID) (int, error)

	// LikesReceived sums likes across the user's posts and reports.
	LikesReceived(ctx context.Context, userID uuid.UUID) (int, error)
}

// Notifier delivers in-app notifications. Delivery is best effort; the
// claim flow does not fail on notifier errors.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, notificationType string, data map[string]interface{}) error
}

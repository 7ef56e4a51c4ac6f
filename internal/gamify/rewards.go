package gamify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/EcoTrackApp/ecotrack-go/internal/models"
)

// ClaimResult reports the outcome of a successful reward claim.
type ClaimResult struct {
	RewardTitle     string  `json:"reward_title"`
	BadgeEarned     *string `json:"badge_earned,omitempty"`
	PointsSpent     int     `json:"points_spent"`
	RemainingPoints int     `json:"remaining_points"`
}

// Claims is the reward eligibility and claim engine.
type Claims struct {
	users    UserStore
	rewards  RewardStore
	oracle   *Oracle
	notifier Notifier
}

// NewClaims creates a reward claim engine.
func NewClaims(users UserStore, rewards RewardStore, oracle *Oracle, notifier Notifier) *Claims {
	return &Claims{users: users, rewards: rewards, oracle: oracle, notifier: notifier}
}

// Claim attempts to claim a reward for a user. Checks run in order:
// reward exists, user exists, points cover the cost, badge not already
// owned, qualifying task complete. The state transition itself is a single
// conditional update so two concurrent claims of the same reward cannot
// both deduct points: the loser of the race is detected by the update's
// effect count and re-classified against fresh state.
func (s *Claims) Claim(ctx context.Context, userID, rewardID uuid.UUID) (*ClaimResult, error) {
	reward, err := s.rewards.GetByID(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Points < reward.PointsRequired {
		return nil, &InsufficientPointsError{Required: reward.PointsRequired, Held: user.Points}
	}

	badge := reward.Badge()
	if badge != "" && user.HasBadge(badge) {
		return nil, ErrAlreadyClaimed
	}

	if !s.oracle.IsComplete(ctx, userID, reward.TaskType, reward.TaskCount) {
		return nil, &TaskIncompleteError{Description: reward.Description}
	}

	applied, err := s.users.ApplyClaim(ctx, userID, reward.PointsRequired, badge)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent claim got there first. Re-read to report the
		// condition that actually blocked us.
		fresh, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if badge != "" && fresh.HasBadge(badge) {
			return nil, ErrAlreadyClaimed
		}
		return nil, &InsufficientPointsError{Required: reward.PointsRequired, Held: fresh.Points}
	}

	rewardsClaimedTotal.Inc()

	notifyData := map[string]interface{}{"reward_id": rewardID.String()}
	if badge != "" {
		notifyData["badge_name"] = badge
	}
	if err := s.notifier.Notify(ctx, userID,
		"Reward Claimed!",
		fmt.Sprintf("You claimed the %q reward!", reward.Title),
		models.NotificationTypeReward,
		notifyData,
	); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Failed to send reward notification")
	}

	return &ClaimResult{
		RewardTitle:     reward.Title,
		BadgeEarned:     reward.BadgeName,
		PointsSpent:     reward.PointsRequired,
		RemainingPoints: user.Points - reward.PointsRequired,
	}, nil
}

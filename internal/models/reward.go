package models

import (
	"time"

	"github.com/google/uuid"
)

// Reward represents a catalog entry that can be claimed for points
type Reward struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	PointsRequired int       `json:"points_required" db:"points_required"`
	BadgeName      *string   `json:"badge_name,omitempty" db:"badge_name"`
	TaskType       string    `json:"task_type" db:"task_type"`
	TaskCount      float64   `json:"task_count" db:"task_count"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Badge returns the badge name, or "" when the reward carries no badge.
func (r *Reward) Badge() string {
	if r.BadgeName == nil {
		return ""
	}
	return *r.BadgeName
}

// RewardListResponse is the catalog view annotated with the
// requesting user's eligibility status
type RewardListResponse struct {
	ID             uuid.UUID `json:"reward_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PointsRequired int       `json:"points_required"`
	BadgeName      *string   `json:"badge_name,omitempty"`
	TaskType       string    `json:"task_type"`
	TaskCount      float64   `json:"task_count"`
	Eligible       bool      `json:"eligible"`
	AlreadyClaimed bool      `json:"already_claimed"`
}

// ToListResponse converts Reward to RewardListResponse for the given user
func (r *Reward) ToListResponse(u *User) RewardListResponse {
	resp := RewardListResponse{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		PointsRequired: r.PointsRequired,
		BadgeName:      r.BadgeName,
		TaskType:       r.TaskType,
		TaskCount:      r.TaskCount,
		Eligible:       u.Points >= r.PointsRequired,
	}
	if r.BadgeName != nil {
		resp.AlreadyClaimed = u.HasBadge(*r.BadgeName)
	}
	return resp
}

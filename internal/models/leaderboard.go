package models

import "github.com/google/uuid"

// LeaderboardEntry represents one ranked user on a leaderboard
type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	Points        int       `json:"points"`
	Level         int       `json:"level"`
	CarbonSaved   float64   `json:"carbon_saved"`
	BadgesCount   int       `json:"badges_count"`
	IsCurrentUser bool      `json:"is_current_user,omitempty"`
}

// LeaderboardResponse is the API response format for leaderboards
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Page        int                `json:"page,omitempty"`
	Limit       int                `json:"limit,omitempty"`
	SortBy      string             `json:"sort_by,omitempty"`
	TotalUsers  int                `json:"total_users"`
}

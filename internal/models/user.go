package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered member of the platform
type User struct {
	ID                uuid.UUID   `json:"id" db:"id"`
	Name              string      `json:"name" db:"name"`
	Email             string      `json:"email" db:"email"`
	PasswordHash      string      `json:"-" db:"password_hash"`
	Role              string      `json:"role" db:"role"` // user, admin
	Points            int         `json:"points" db:"points"`
	Level             int         `json:"level" db:"level"`
	Badges            []string    `json:"badges" db:"badges"`
	CarbonSaved       float64     `json:"carbon_footprint_saved" db:"carbon_footprint_saved"`
	ProfilePictureURL *string     `json:"profile_picture_url,omitempty" db:"profile_picture_url"`
	Followers         []uuid.UUID `json:"-" db:"followers"`
	Following         []uuid.UUID `json:"-" db:"following"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// HasBadge reports whether the user already owns the named badge
func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// UserProfileResponse is the public view of a user profile
type UserProfileResponse struct {
	ID                uuid.UUID `json:"user_id"`
	Name              string    `json:"name"`
	Points            int       `json:"points"`
	Level             int       `json:"level"`
	Badges            []string  `json:"badges"`
	CarbonSaved       float64   `json:"carbon_footprint_saved"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	FollowersCount    int       `json:"followers_count"`
	FollowingCount    int       `json:"following_count"`
	IsFollowing       bool      `json:"is_following"`
}

// ToProfileResponse converts User to UserProfileResponse
func (u *User) ToProfileResponse(viewer *User) UserProfileResponse {
	resp := UserProfileResponse{
		ID:                u.ID,
		Name:              u.Name,
		Points:            u.Points,
		Level:             u.Level,
		Badges:            u.Badges,
		CarbonSaved:       u.CarbonSaved,
		ProfilePictureURL: u.ProfilePictureURL,
		FollowersCount:    len(u.Followers),
		FollowingCount:    len(u.Following),
	}
	if resp.Badges == nil {
		resp.Badges = []string{}
	}
	if viewer != nil {
		for _, id := range viewer.Following {
			if id == u.ID {
				resp.IsFollowing = true
				break
			}
		}
	}
	return resp
}

// AdminUserResponse is the admin listing view of a user
type AdminUserResponse struct {
	ID          uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Points      int       `json:"points"`
	Level       int       `json:"level"`
	CarbonSaved float64   `json:"carbon_saved"`
	CreatedAt   string    `json:"created_at"`
}

// ToAdminResponse converts User to AdminUserResponse
func (u *User) ToAdminResponse() AdminUserResponse {
	return AdminUserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Points:      u.Points,
		Level:       u.Level,
		CarbonSaved: u.CarbonSaved,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
